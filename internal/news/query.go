package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/internal/storage"
)

// ErrNoMatch signals that a name-based discovery filter resolved to no
// taxonomy entity. It is a legitimate zero-result outcome, not a fault:
// callers answer it with an empty list.
var ErrNoMatch = errors.New("taxonomy filter matched nothing")

// ErrBadDate signals an unparseable date selector.
var ErrBadDate = errors.New("invalid date, expected YYYY-MM-DD or \"all\"")

// DateAll is the date selector that removes the date window entirely.
const DateAll = "all"

// DiscoveryParams is the flat public query surface of the news listing.
// Identifier and name-based taxonomy filters are mutually substitutable;
// name-based ones go through the Resolver first.
type DiscoveryParams struct {
	State        string // exact state ID
	District     string // exact district ID
	Category     string // exact category ID
	StateName    string // state name or code
	DistrictSlug string // district slug or hyphenated name
	CategorySlug string // category slug or hyphenated name
	Tag          string
	Search       string
	TopStory     bool
	Trending     bool
	Banner       bool
	Date         string // YYYY-MM-DD, "all", or empty meaning today
}

// Compiler turns DiscoveryParams into a single storage.NewsFilter. The
// discovery read path only ever sees published articles.
type Compiler struct {
	resolver *Resolver
	now      func() time.Time
}

func NewCompiler(resolver *Resolver) *Compiler {
	return &Compiler{resolver: resolver, now: time.Now}
}

// Compile resolves every name-based filter, fans the free-text term out
// across the taxonomy kinds, applies the date window and combines all
// active constraints conjunctively. A resolver miss on any exact filter
// returns ErrNoMatch.
func (c *Compiler) Compile(ctx context.Context, p DiscoveryParams) (storage.NewsFilter, error) {
	filter := storage.NewsFilter{
		Status:   "published",
		Tag:      p.Tag,
		TopStory: p.TopStory,
		Trending: p.Trending,
		Banner:   p.Banner,
		Limit:    storage.MaxNewsResults,
	}

	var err error
	if filter.StateID, err = exactID(p.State); err != nil {
		return storage.NewsFilter{}, err
	}
	if filter.DistrictID, err = exactID(p.District); err != nil {
		return storage.NewsFilter{}, err
	}
	if filter.CategoryID, err = exactID(p.Category); err != nil {
		return storage.NewsFilter{}, err
	}

	if p.StateName != "" {
		id, err := c.resolver.ResolveState(ctx, p.StateName)
		if err != nil {
			return storage.NewsFilter{}, fmt.Errorf("resolve state %q: %w", p.StateName, err)
		}
		if id == nil {
			return storage.NewsFilter{}, ErrNoMatch
		}
		filter.StateID = id
	}
	if p.DistrictSlug != "" {
		id, err := c.resolver.ResolveDistrict(ctx, p.DistrictSlug)
		if err != nil {
			return storage.NewsFilter{}, fmt.Errorf("resolve district %q: %w", p.DistrictSlug, err)
		}
		if id == nil {
			return storage.NewsFilter{}, ErrNoMatch
		}
		filter.DistrictID = id
	}
	if p.CategorySlug != "" {
		id, err := c.resolver.ResolveCategory(ctx, p.CategorySlug)
		if err != nil {
			return storage.NewsFilter{}, fmt.Errorf("resolve category %q: %w", p.CategorySlug, err)
		}
		if id == nil {
			return storage.NewsFilter{}, ErrNoMatch
		}
		filter.CategoryID = id
	}

	if p.Search != "" {
		matches, err := c.resolver.SearchTaxonomies(ctx, p.Search)
		if err != nil {
			return storage.NewsFilter{}, fmt.Errorf("search taxonomies for %q: %w", p.Search, err)
		}
		filter.Search = p.Search
		filter.SearchStateIDs = matches.StateIDs
		filter.SearchDistrictIDs = matches.DistrictIDs
		filter.SearchCategoryIDs = matches.CategoryIDs
	}

	// Date window defaults to today; date=all lifts it. A free-text
	// search spans all time regardless of the selector.
	if p.Date != DateAll && p.Search == "" {
		target := c.now()
		if p.Date != "" {
			parsed, err := time.ParseInLocation("2006-01-02", p.Date, time.Local)
			if err != nil {
				return storage.NewsFilter{}, ErrBadDate
			}
			target = parsed
		}
		start := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.Local)
		end := time.Date(target.Year(), target.Month(), target.Day(), 23, 59, 59, 999_000_000, time.Local)
		filter.CreatedFrom = &start
		filter.CreatedTo = &end
	}

	return filter, nil
}

// exactID parses an identifier filter. A malformed identifier can never
// match an article, so it collapses to ErrNoMatch rather than a fault.
func exactID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrNoMatch
	}
	return &id, nil
}
