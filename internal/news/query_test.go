package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajanews/cms-backend/internal/models"
	"github.com/prajanews/cms-backend/internal/storage"
)

// stubStore overrides just the lookups the compiler touches; everything
// else panics if reached.
type stubStore struct {
	storage.Store

	findState    func(candidate string) (*models.State, error)
	findDistrict func(candidate string) (*models.District, error)
	findCategory func(candidate string) (*models.Category, error)

	searchStates     func(term string) ([]uuid.UUID, error)
	searchDistricts  func(term string) ([]uuid.UUID, error)
	searchCategories func(term string) ([]uuid.UUID, error)
}

func (s *stubStore) FindState(_ context.Context, candidate string) (*models.State, error) {
	if s.findState != nil {
		return s.findState(candidate)
	}
	return nil, nil
}

func (s *stubStore) FindDistrict(_ context.Context, candidate string) (*models.District, error) {
	if s.findDistrict != nil {
		return s.findDistrict(candidate)
	}
	return nil, nil
}

func (s *stubStore) FindCategory(_ context.Context, candidate string) (*models.Category, error) {
	if s.findCategory != nil {
		return s.findCategory(candidate)
	}
	return nil, nil
}

func (s *stubStore) SearchStateIDs(_ context.Context, term string) ([]uuid.UUID, error) {
	if s.searchStates != nil {
		return s.searchStates(term)
	}
	return nil, nil
}

func (s *stubStore) SearchDistrictIDs(_ context.Context, term string) ([]uuid.UUID, error) {
	if s.searchDistricts != nil {
		return s.searchDistricts(term)
	}
	return nil, nil
}

func (s *stubStore) SearchCategoryIDs(_ context.Context, term string) ([]uuid.UUID, error) {
	if s.searchCategories != nil {
		return s.searchCategories(term)
	}
	return nil, nil
}

func newTestCompiler(store storage.Store, now time.Time) *Compiler {
	c := NewCompiler(NewResolver(store))
	c.now = func() time.Time { return now }
	return c
}

func TestCompileDefaults(t *testing.T) {
	now := time.Date(2026, time.August, 31, 14, 30, 0, 0, time.Local)
	c := newTestCompiler(&stubStore{}, now)

	filter, err := c.Compile(context.Background(), DiscoveryParams{})
	require.NoError(t, err)

	assert.Equal(t, "published", filter.Status)
	assert.Equal(t, storage.MaxNewsResults, filter.Limit)
	require.NotNil(t, filter.CreatedFrom)
	require.NotNil(t, filter.CreatedTo)
	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.Local), *filter.CreatedFrom)
	assert.Equal(t, time.Date(2026, time.August, 31, 23, 59, 59, 999_000_000, time.Local), *filter.CreatedTo)
}

func TestCompileDateAll(t *testing.T) {
	c := newTestCompiler(&stubStore{}, time.Now())

	filter, err := c.Compile(context.Background(), DiscoveryParams{Date: DateAll})
	require.NoError(t, err)

	assert.Nil(t, filter.CreatedFrom)
	assert.Nil(t, filter.CreatedTo)
}

func TestCompileExplicitDate(t *testing.T) {
	c := newTestCompiler(&stubStore{}, time.Now())

	filter, err := c.Compile(context.Background(), DiscoveryParams{Date: "2026-01-15"})
	require.NoError(t, err)

	require.NotNil(t, filter.CreatedFrom)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.Local), *filter.CreatedFrom)
	assert.Equal(t, time.Date(2026, time.January, 15, 23, 59, 59, 999_000_000, time.Local), *filter.CreatedTo)
}

func TestCompileBadDate(t *testing.T) {
	c := newTestCompiler(&stubStore{}, time.Now())

	_, err := c.Compile(context.Background(), DiscoveryParams{Date: "15-01-2026"})
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestCompileSearchSpansAllTime(t *testing.T) {
	stateID := uuid.New()
	categoryID := uuid.New()
	store := &stubStore{
		searchStates: func(term string) ([]uuid.UUID, error) {
			assert.Equal(t, "budget", term)
			return []uuid.UUID{stateID}, nil
		},
		searchCategories: func(string) ([]uuid.UUID, error) {
			return []uuid.UUID{categoryID}, nil
		},
	}
	c := newTestCompiler(store, time.Now())

	filter, err := c.Compile(context.Background(), DiscoveryParams{Search: "budget", Date: "2026-01-15"})
	require.NoError(t, err)

	assert.Equal(t, "budget", filter.Search)
	assert.Equal(t, []uuid.UUID{stateID}, filter.SearchStateIDs)
	assert.Empty(t, filter.SearchDistrictIDs)
	assert.Equal(t, []uuid.UUID{categoryID}, filter.SearchCategoryIDs)
	assert.Nil(t, filter.CreatedFrom, "search must lift the date window")
	assert.Nil(t, filter.CreatedTo)
}

func TestCompileNameFilterMiss(t *testing.T) {
	c := newTestCompiler(&stubStore{}, time.Now())

	_, err := c.Compile(context.Background(), DiscoveryParams{CategorySlug: "no-such-category"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestCompileNameFilterHit(t *testing.T) {
	state := &models.State{ID: uuid.New(), Name: "Telangana", Code: "TS"}
	store := &stubStore{
		findState: func(candidate string) (*models.State, error) {
			if candidate == "telangana" || candidate == "Telangana" {
				return state, nil
			}
			return nil, nil
		},
	}
	c := newTestCompiler(store, time.Now())

	filter, err := c.Compile(context.Background(), DiscoveryParams{StateName: "Telangana", Date: DateAll})
	require.NoError(t, err)
	require.NotNil(t, filter.StateID)
	assert.Equal(t, state.ID, *filter.StateID)
}

func TestCompileMalformedExactID(t *testing.T) {
	c := newTestCompiler(&stubStore{}, time.Now())

	_, err := c.Compile(context.Background(), DiscoveryParams{Category: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestCompileResolverFault(t *testing.T) {
	boom := errors.New("connection reset")
	store := &stubStore{
		findDistrict: func(string) (*models.District, error) { return nil, boom },
	}
	c := newTestCompiler(store, time.Now())

	_, err := c.Compile(context.Background(), DiscoveryParams{DistrictSlug: "warangal"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestSearchTaxonomiesGathersAllKinds(t *testing.T) {
	districtID := uuid.New()
	store := &stubStore{
		searchDistricts: func(string) ([]uuid.UUID, error) {
			return []uuid.UUID{districtID}, nil
		},
	}

	matches, err := NewResolver(store).SearchTaxonomies(context.Background(), "hyder")
	require.NoError(t, err)
	assert.Empty(t, matches.StateIDs)
	assert.Equal(t, []uuid.UUID{districtID}, matches.DistrictIDs)
	assert.Empty(t, matches.CategoryIDs)
}

func TestSearchTaxonomiesFault(t *testing.T) {
	boom := errors.New("timeout")
	store := &stubStore{
		searchCategories: func(string) ([]uuid.UUID, error) { return nil, boom },
	}

	_, err := NewResolver(store).SearchTaxonomies(context.Background(), "sports")
	assert.ErrorIs(t, err, boom)
}
