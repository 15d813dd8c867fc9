// ABOUTME: Identity sets collected for one real-world person
// ABOUTME: Holds ids, canonical emails, canonical phones and loose phone digit keys
package identity

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/harperreed/courtside/contact"
)

// Kind names one kind of identity value. Values only compare within their kind.
type Kind string

const (
	KindID          Kind = "id"
	KindEmail       Kind = "email"
	KindPhone       Kind = "phone"
	KindPhoneDigits Kind = "phone_digits"
)

// Set is every identity value attributable to one person. Sets only grow.
// The zero value is an empty set ready to use.
type Set struct {
	ids         map[string]struct{}
	emails      map[string]struct{}
	phones      map[string]struct{}
	phoneDigits map[string]struct{}
}

// NewSet returns an empty identity set.
func NewSet() Set {
	return Set{}
}

// FromID returns a set holding a single bare id.
func FromID(id string) Set {
	s := Set{}
	s.AddID(id)
	return s
}

// AddID adds an account id. Blank ids are ignored.
func (s *Set) AddID(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	s.ids = add(s.ids, id)
}

// AddEmail adds an email after normalization. Unparseable emails are ignored.
func (s *Set) AddEmail(email string) {
	normalized := contact.NormalizeEmail(email)
	if normalized == "" {
		return
	}
	s.emails = add(s.emails, normalized)
}

// AddPhone adds the canonical form and loose digit keys of a phone number.
func (s *Set) AddPhone(phone string) {
	normalized := contact.NormalizePhone(phone)
	if normalized == "" {
		return
	}
	s.phones = add(s.phones, normalized)
	for _, key := range contact.LoosePhoneKeys(phone) {
		s.phoneDigits = add(s.phoneDigits, key)
	}
}

// Union adds every value of other to s.
func (s *Set) Union(other Set) {
	for v := range other.ids {
		s.ids = add(s.ids, v)
	}
	for v := range other.emails {
		s.emails = add(s.emails, v)
	}
	for v := range other.phones {
		s.phones = add(s.phones, v)
	}
	for v := range other.phoneDigits {
		s.phoneDigits = add(s.phoneDigits, v)
	}
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	var c Set
	c.Union(s)
	return c
}

// IsEmpty reports whether the set holds no values of any kind.
func (s Set) IsEmpty() bool {
	return len(s.ids) == 0 && len(s.emails) == 0 && len(s.phones) == 0 && len(s.phoneDigits) == 0
}

// HasID reports whether id (after trimming) is one of the set's ids.
func (s Set) HasID(id string) bool {
	_, ok := s.ids[strings.TrimSpace(id)]
	return ok
}

// HasEmail reports whether the normalized email is in the set.
func (s Set) HasEmail(email string) bool {
	_, ok := s.emails[contact.NormalizeEmail(email)]
	return ok
}

// IDs returns the set's ids in sorted order.
func (s Set) IDs() []string { return sorted(s.ids) }

// Emails returns the set's canonical emails in sorted order.
func (s Set) Emails() []string { return sorted(s.emails) }

// Phones returns the set's canonical phones in sorted order.
func (s Set) Phones() []string { return sorted(s.phones) }

// PhoneDigits returns the set's loose phone keys in sorted order.
func (s Set) PhoneDigits() []string { return sorted(s.phoneDigits) }

// Values returns the set's values of one kind in sorted order.
func (s Set) Values(kind Kind) []string {
	switch kind {
	case KindID:
		return s.IDs()
	case KindEmail:
		return s.Emails()
	case KindPhone:
		return s.Phones()
	case KindPhoneDigits:
		return s.PhoneDigits()
	}
	return nil
}

// String renders the set compactly for logs.
func (s Set) String() string {
	var parts []string
	for _, kind := range []Kind{KindID, KindEmail, KindPhone} {
		for _, v := range s.Values(kind) {
			parts = append(parts, string(kind)+":"+v)
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

type setJSON struct {
	IDs         []string `json:"ids"`
	Emails      []string `json:"emails"`
	Phones      []string `json:"phones"`
	PhoneDigits []string `json:"phone_digits"`
}

// MarshalJSON encodes the set as sorted arrays per kind.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(setJSON{
		IDs:         nonNil(s.IDs()),
		Emails:      nonNil(s.Emails()),
		Phones:      nonNil(s.Phones()),
		PhoneDigits: nonNil(s.PhoneDigits()),
	})
}

// UnmarshalJSON decodes the sorted-array form. Contacts are re-normalized.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw setJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Set{}
	for _, v := range raw.IDs {
		s.AddID(v)
	}
	for _, v := range raw.Emails {
		s.AddEmail(v)
	}
	for _, v := range raw.Phones {
		s.AddPhone(v)
	}
	for _, v := range raw.PhoneDigits {
		if len(v) >= contact.MinPhoneDigits && v == contact.PhoneDigits(v) {
			s.phoneDigits = add(s.phoneDigits, v)
		}
	}
	return nil
}

func add(m map[string]struct{}, v string) map[string]struct{} {
	if m == nil {
		m = make(map[string]struct{})
	}
	m[v] = struct{}{}
	return m
}

func sorted(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// formatNumber renders a JSON number as an id so 42, 42.0 and "42" agree.
// Plain integer literals are kept verbatim to avoid float rounding of large ids.
func formatNumber(raw string, num float64) string {
	if isIntegerLiteral(raw) {
		return strings.TrimPrefix(raw, "+")
	}
	if num == float64(int64(num)) {
		return strconv.FormatInt(int64(num), 10)
	}
	return raw
}

func isIntegerLiteral(raw string) bool {
	raw = strings.TrimPrefix(raw, "-")
	if raw == "" {
		return false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
