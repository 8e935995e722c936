// Package location canonicalizes region identifiers.
//
// Azure APIs are inconsistent about whether they report regions as machine
// codes ("westeurope") or display names ("West Europe"); some provider
// catalogs even mix both in one list. Comparisons therefore go through
// Normalize, and variant resolution bridges code/display-name pairs using the
// subscription's location catalog.
package location

import (
	"strings"
	"unicode"
)

// Normalize lower-cases s and strips every non-alphanumeric rune, so
// "West Europe", "westeurope" and "West-Europe" all map to "westeurope".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Equal reports whether two region identifiers normalize to the same token.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Pair is one entry of a subscription's location catalog.
type Pair struct {
	Code        string
	DisplayName string
}

// Variants returns every normalized string that can represent the requested
// region: the normalized input itself plus, for any catalog pair the input
// matches on either side, the normalized other side. The input is always
// included even when the region is unknown to the catalog, so matching still
// works against catalogs the subscription listing does not know about.
func Variants(region string, known []Pair) map[string]struct{} {
	variants := map[string]struct{}{
		Normalize(region): {},
	}
	target := Normalize(region)
	for _, p := range known {
		code := Normalize(p.Code)
		display := Normalize(p.DisplayName)
		if code == target || display == target {
			if code != "" {
				variants[code] = struct{}{}
			}
			if display != "" {
				variants[display] = struct{}{}
			}
		}
	}
	return variants
}

// Matches reports whether candidate, in any naming scheme, denotes the
// requested region given the subscription's location catalog.
func Matches(region, candidate string, known []Pair) bool {
	_, ok := Variants(region, known)[Normalize(candidate)]
	return ok
}
