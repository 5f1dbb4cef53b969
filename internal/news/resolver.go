package news

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/internal/storage"
)

// Resolver translates human-readable taxonomy names, codes and slugs
// into internal identifiers. All lookups are read-only; a miss is
// reported as (nil, nil), never as an error.
type Resolver struct {
	store storage.Store
}

func NewResolver(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveState matches the candidate against state names and codes,
// case-insensitively.
func (r *Resolver) ResolveState(ctx context.Context, candidate string) (*uuid.UUID, error) {
	state, err := r.store.FindState(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	return &state.ID, nil
}

// ResolveDistrict matches the candidate against district slugs, then
// names with hyphens treated as spaces.
func (r *Resolver) ResolveDistrict(ctx context.Context, candidate string) (*uuid.UUID, error) {
	district, err := r.store.FindDistrict(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if district == nil {
		return nil, nil
	}
	return &district.ID, nil
}

// ResolveCategory matches the candidate against category slugs, then
// names with hyphens treated as spaces.
func (r *Resolver) ResolveCategory(ctx context.Context, candidate string) (*uuid.UUID, error) {
	category, err := r.store.FindCategory(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return &category.ID, nil
}

// SearchMatches holds the identifier sets collected by SearchTaxonomies.
type SearchMatches struct {
	StateIDs    []uuid.UUID
	DistrictIDs []uuid.UUID
	CategoryIDs []uuid.UUID
}

// SearchTaxonomies runs the substring lookups for a free-text term
// against all three taxonomy kinds concurrently and gathers every
// matching identifier per kind. Empty sets are legitimate; only a store
// fault on any leg fails the whole gather.
func (r *Resolver) SearchTaxonomies(ctx context.Context, term string) (*SearchMatches, error) {
	var (
		matches SearchMatches
		errs    [3]error
		wg      sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		matches.StateIDs, errs[0] = r.store.SearchStateIDs(ctx, term)
	}()
	go func() {
		defer wg.Done()
		matches.DistrictIDs, errs[1] = r.store.SearchDistrictIDs(ctx, term)
	}()
	go func() {
		defer wg.Done()
		matches.CategoryIDs, errs[2] = r.store.SearchCategoryIDs(ctx, term)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &matches, nil
}
