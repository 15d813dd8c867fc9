// ABOUTME: Identity matching between viewers and records
// ABOUTME: Any shared id, email or phone key is proof that two sets are the same person
package identity

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Overlaps reports whether a and b share at least one identity value of any kind.
// Phones match at the canonical level or at the loose digit level. Empty sets
// overlap with nothing.
func Overlaps(a, b Set) bool {
	return intersects(a.ids, b.ids) ||
		intersects(a.emails, b.emails) ||
		intersects(a.phones, b.phones) ||
		intersects(a.phoneDigits, b.phoneDigits)
}

// MatchesRecord reports whether the viewer is the person described by record.
func MatchesRecord(viewer Set, record gjson.Result) bool {
	if viewer.IsEmpty() {
		return false
	}
	return Overlaps(viewer, Collect(record))
}

// MatchesID reports whether a bare id value (number or string) is one of the viewer's ids.
func MatchesID(viewer Set, rawID gjson.Result) bool {
	id, ok := idString(rawID)
	if !ok {
		return false
	}
	return MatchesIDString(viewer, id)
}

// MatchesIDString is MatchesID for an id already in string form.
func MatchesIDString(viewer Set, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	return viewer.HasID(id)
}

// Shared returns the values a and b have in common, per kind.
func Shared(a, b Set) map[Kind][]string {
	shared := make(map[Kind][]string)
	for _, kind := range []Kind{KindID, KindEmail, KindPhone, KindPhoneDigits} {
		other := b.Values(kind)
		if len(other) == 0 {
			continue
		}
		lookup := make(map[string]struct{}, len(other))
		for _, v := range other {
			lookup[v] = struct{}{}
		}
		for _, v := range a.Values(kind) {
			if _, ok := lookup[v]; ok {
				shared[kind] = append(shared[kind], v)
			}
		}
	}
	return shared
}

func intersects(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for v := range a {
		if _, ok := b[v]; ok {
			return true
		}
	}
	return false
}
