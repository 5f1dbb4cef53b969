package news

import (
	"strconv"
	"strings"
	"time"

	gslug "github.com/gosimple/slug"
)

// Slugify derives the URL-safe identity string for an article title at
// time t. The millisecond suffix keeps slugs distinct across identical
// titles submitted at different moments; the write path additionally
// verifies uniqueness against the store.
func Slugify(title string, t time.Time) string {
	return gslug.Make(title) + "-" + strconv.FormatInt(t.UnixMilli(), 10)
}

// DistrictSlug derives a district's permanent slug from its name:
// lowercased with spaces replaced by hyphens. Derived once at creation
// and never regenerated.
func DistrictSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// CategorySlug derives a category's slug from its name.
func CategorySlug(name string) string {
	return gslug.Make(name)
}
