// ABOUTME: Identity extraction from arbitrarily shaped API records
// ABOUTME: Walks a fixed alias table (ids, contacts, nested wrappers) to build an identity Set
package identity

import (
	"strings"

	"github.com/tidwall/gjson"
)

// MaxDepth bounds how many nested wrapper objects are expanded below a record.
const MaxDepth = 4

// IDAliases are the fields whose values are account ids.
// Object values are treated as nested records; arrays are flattened.
var IDAliases = []string{
	"id",
	"user_id", "userId",
	"player_id", "playerId",
	"member_id", "memberId",
	"participant_id", "participantId",
	"match_participant_id", "matchParticipantId",
	"invitee_id", "inviteeId",
	"identity", "identity_id", "identityId",
	"identities", "identity_ids",
}

// EmailAliases are the fields holding email addresses.
var EmailAliases = []string{
	"email",
	"contact_email", "contactEmail",
}

// PhoneAliases are the fields holding phone numbers.
var PhoneAliases = []string{
	"phone",
	"mobile",
	"contact_phone", "contactPhone",
}

// WrapperKeys are nested objects describing the same person. They are
// expanded with the same rules but never contribute an id themselves.
var WrapperKeys = []string{
	"profile",
	"account",
	"person",
	"member",
	"user",
	"userRecord", "user_record",
	"player",
	"contact",
	"memberships", "membership",
}

// Collect returns every identity value attributable to record.
// Numbers and strings are bare ids; objects are walked through the alias
// tables; anything else contributes nothing.
func Collect(record gjson.Result) Set {
	var s Set
	collectRecord(record, &s, 0)
	return s
}

// CollectJSON parses raw JSON and collects its identity values.
func CollectJSON(data []byte) Set {
	if !gjson.ValidBytes(data) {
		return Set{}
	}
	return Collect(gjson.ParseBytes(data))
}

func collectRecord(r gjson.Result, s *Set, depth int) {
	if depth > MaxDepth {
		return
	}

	switch {
	case r.IsArray():
		r.ForEach(func(_, v gjson.Result) bool {
			collectRecord(v, s, depth)
			return true
		})
	case r.IsObject():
		collectObject(r, s, depth)
	default:
		if id, ok := idString(r); ok {
			s.AddID(id)
		}
	}
}

func collectObject(r gjson.Result, s *Set, depth int) {
	for _, key := range IDAliases {
		collectID(r.Get(key), s, depth)
	}
	for _, key := range EmailAliases {
		collectEmail(r.Get(key), s)
	}
	for _, key := range PhoneAliases {
		collectPhone(r.Get(key), s)
	}
	for _, key := range WrapperKeys {
		if v := r.Get(key); v.IsObject() || v.IsArray() {
			collectRecord(v, s, depth+1)
		}
	}
}

func collectID(v gjson.Result, s *Set, depth int) {
	switch {
	case v.IsArray():
		v.ForEach(func(_, elem gjson.Result) bool {
			collectID(elem, s, depth)
			return true
		})
	case v.IsObject():
		collectRecord(v, s, depth+1)
	default:
		if id, ok := idString(v); ok {
			s.AddID(id)
		}
	}
}

func collectEmail(v gjson.Result, s *Set) {
	switch {
	case v.IsArray():
		v.ForEach(func(_, elem gjson.Result) bool {
			collectEmail(elem, s)
			return true
		})
	case v.Type == gjson.String:
		s.AddEmail(v.Str)
	}
}

func collectPhone(v gjson.Result, s *Set) {
	switch {
	case v.IsArray():
		v.ForEach(func(_, elem gjson.Result) bool {
			collectPhone(elem, s)
			return true
		})
	case v.Type == gjson.String:
		s.AddPhone(v.Str)
	case v.Type == gjson.Number:
		s.AddPhone(v.Raw)
	}
}

// IDOf returns the id form of a number or string value, or "" for anything else.
func IDOf(v gjson.Result) string {
	id, ok := idString(v)
	if !ok {
		return ""
	}
	return strings.TrimSpace(id)
}

// idString coerces a number or string to its id form.
func idString(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.Number:
		return formatNumber(v.Raw, v.Num), true
	case gjson.String:
		if v.Str == "" {
			return "", false
		}
		return v.Str, true
	}
	return "", false
}
