package news

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	at := time.UnixMilli(1756600000000)

	slug := Slugify("Union Budget Allocates Record Funds", at)
	assert.Equal(t, "union-budget-allocates-record-funds-1756600000000", slug)

	// Identical titles at different instants get distinct slugs.
	later := Slugify("Union Budget Allocates Record Funds", at.Add(time.Millisecond))
	assert.NotEqual(t, slug, later)
}

func TestSlugifyURLSafe(t *testing.T) {
	at := time.UnixMilli(1756600000000)

	slug := Slugify("Breaking: CM's ₹500 Crore Plan!", at)
	assert.NotContains(t, slug, " ")
	assert.NotContains(t, slug, ":")
	assert.NotContains(t, slug, "'")
	assert.Equal(t, strings.ToLower(slug), slug)
}

func TestDistrictSlug(t *testing.T) {
	assert.Equal(t, "bengaluru-urban", DistrictSlug("Bengaluru Urban"))
	assert.Equal(t, "hyderabad", DistrictSlug("  Hyderabad "))
}

func TestCategorySlug(t *testing.T) {
	assert.Equal(t, "national", CategorySlug("National"))
	assert.Equal(t, "arts-and-culture", CategorySlug("Arts & Culture"))
}
