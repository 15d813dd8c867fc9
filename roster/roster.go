// ABOUTME: Roster deduplication for match participants and invitees
// ABOUTME: Collapses redundant raw entries into distinct people and counts occupants
package roster

import (
	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
)

// ParticipantListKeys are the match fields holding participant arrays.
var ParticipantListKeys = []string{
	"participants",
	"match_participants", "matchParticipants",
	"players",
}

// InviteeListKeys are the match fields holding invitee arrays.
var InviteeListKeys = []string{
	"invitees",
	"invites",
	"invitations",
	"match_invitees", "matchInvitees",
}

// Entry is one roster record with its derived identity and status.
// Raw is never modified.
type Entry struct {
	Raw      gjson.Result
	Identity identity.Set
	Status   string
}

// NewParticipant derives a participant entry from a raw record.
func NewParticipant(raw gjson.Result) Entry {
	return Entry{
		Raw:      raw,
		Identity: identity.Collect(raw),
		Status:   StatusOf(raw, ParticipantStatusFields),
	}
}

// NewInvitee derives an invitee entry from a raw record.
func NewInvitee(raw gjson.Result) Entry {
	return Entry{
		Raw:      raw,
		Identity: identity.Collect(raw),
		Status:   StatusOf(raw, InviteeStatusFields),
	}
}

// Raws returns the raw records of entries, in order.
func Raws(entries []Entry) []gjson.Result {
	out := make([]gjson.Result, len(entries))
	for i, e := range entries {
		out[i] = e.Raw
	}
	return out
}

// ParticipantsOf returns every participant record listed on the match.
func ParticipantsOf(match gjson.Result) []gjson.Result {
	return listed(match, ParticipantListKeys)
}

// InviteesOf returns every invitee record listed on the match.
func InviteesOf(match gjson.Result) []gjson.Result {
	return listed(match, InviteeListKeys)
}

func listed(match gjson.Result, keys []string) []gjson.Result {
	if !match.IsObject() {
		return nil
	}
	var out []gjson.Result
	for _, key := range keys {
		if v := match.Get(key); v.IsArray() {
			out = append(out, v.Array()...)
		}
	}
	return out
}

// FilterActiveParticipants drops departed participants and keeps only the
// first entry for each person.
func FilterActiveParticipants(raw []gjson.Result) []Entry {
	var entries []Entry
	for _, r := range raw {
		if !IsActiveParticipant(r) {
			continue
		}
		entries = append(entries, NewParticipant(r))
	}
	return dedupe(entries)
}

// FilterRelevantInvitees drops inactive or departed invitees and keeps only
// the first entry for each person.
func FilterRelevantInvitees(raw []gjson.Result) []Entry {
	var entries []Entry
	for _, r := range raw {
		if !IsRelevantInvitee(r) {
			continue
		}
		entries = append(entries, NewInvitee(r))
	}
	return dedupe(entries)
}

// AcceptedInvitees returns the relevant invitees that have accepted.
func AcceptedInvitees(invitees []Entry) []Entry {
	var out []Entry
	for _, e := range invitees {
		if IsAcceptedInvitee(e.Raw) {
			out = append(out, e)
		}
	}
	return out
}

// dedupe keeps the first entry of any group whose identities overlap and
// unions the identities of later duplicates into it, so a record that links
// two kept entries folds them together. Entries without identity values never
// overlap and are always kept.
func dedupe(entries []Entry) []Entry {
	var kept []Entry
	for _, e := range entries {
		first := -1
		for i := 0; i < len(kept); i++ {
			if !identity.Overlaps(kept[i].Identity, e.Identity) {
				continue
			}
			if first < 0 {
				first = i
				kept[i].Identity.Union(e.Identity)
				continue
			}
			kept[first].Identity.Union(kept[i].Identity)
			kept = append(kept[:i], kept[i+1:]...)
			i--
		}
		if first < 0 {
			e.Identity = e.Identity.Clone()
			kept = append(kept, e)
		}
	}
	return kept
}

// CountUniqueOccupants counts distinct people across both lists. Entries whose
// identities overlap, directly or through a chain of overlaps, count once.
func CountUniqueOccupants(participants, invitees []Entry) int {
	all := make([]Entry, 0, len(participants)+len(invitees))
	all = append(all, participants...)
	all = append(all, invitees...)

	parent := make([]int, len(all))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	groups := len(all)
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if !identity.Overlaps(all[i].Identity, all[j].Identity) {
				continue
			}
			if ri, rj := find(i), find(j); ri != rj {
				parent[rj] = ri
				groups--
			}
		}
	}
	return groups
}

// Summarize counts the raw and deduplicated roster of a match.
func Summarize(match gjson.Result) models.RosterSummary {
	rawParticipants := ParticipantsOf(match)
	rawInvitees := InviteesOf(match)

	active := FilterActiveParticipants(rawParticipants)
	relevant := FilterRelevantInvitees(rawInvitees)
	accepted := AcceptedInvitees(relevant)

	return models.RosterSummary{
		MatchID:            identity.IDOf(match.Get("id")),
		HostID:             identity.HostID(match),
		RawParticipants:    len(rawParticipants),
		ActiveParticipants: len(active),
		RawInvitees:        len(rawInvitees),
		RelevantInvitees:   len(relevant),
		AcceptedInvitees:   len(accepted),
		PendingInvitees:    len(relevant) - len(accepted),
		Occupants:          CountUniqueOccupants(active, accepted),
	}
}
