package method

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// SectorSlug normalizes a sector label ("Public sector") into the short key
// used by framework routes ("public").
func SectorSlug(sector string) string {
	normalized, err := slug.Normalize(sector)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.TrimSpace(sector))
	}
	normalized = strings.TrimSuffix(normalized, "-sector")
	return strings.TrimSuffix(normalized, "_sector")
}

// IsValidSlug reports whether the value matches the default slug rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
