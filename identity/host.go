// ABOUTME: Host recognition for matches and roster entries
// ABOUTME: Host contact data is often denormalized onto the match, so it has its own alias table
package identity

import (
	"strings"

	"github.com/tidwall/gjson"
)

// HostIDAliases are match fields declaring the host's id.
var HostIDAliases = []string{
	"host_id", "hostId",
	"host_user_id", "hostUserId",
	"organizer_id", "organizerId",
	"owner_id", "ownerId",
	"creator_id", "creatorId",
	"created_by", "createdBy",
}

// HostWrapperKeys are match fields holding a nested host record.
var HostWrapperKeys = []string{
	"host",
	"host_user", "hostUser",
	"organizer",
	"owner",
	"creator",
	"created_by_user", "createdByUser",
}

// HostEmailAliases are match fields carrying the host's email.
var HostEmailAliases = []string{
	"host_email", "hostEmail",
	"host_contact_email", "hostContactEmail",
	"organizer_email", "organizerEmail",
	"owner_email", "ownerEmail",
	"creator_email", "creatorEmail",
}

// HostPhoneAliases are match fields carrying the host's phone.
var HostPhoneAliases = []string{
	"host_phone", "hostPhone",
	"host_mobile", "hostMobile",
	"host_contact_phone", "hostContactPhone",
	"organizer_phone", "organizerPhone",
	"owner_phone", "ownerPhone",
	"creator_phone", "creatorPhone",
}

// HostRoleFields are roster entry fields that may carry a hosting keyword.
var HostRoleFields = []string{
	"status",
	"role",
	"participant_status", "participantStatus",
	"participant_role", "participantRole",
	"membership_role", "membershipRole",
}

var hostKeywords = map[string]bool{
	"hosting":   true,
	"host":      true,
	"organizer": true,
	"owner":     true,
}

// HostID returns the first declared host id on the match, or "".
func HostID(match gjson.Result) string {
	for _, key := range HostIDAliases {
		if id, ok := idString(match.Get(key)); ok {
			if id = strings.TrimSpace(id); id != "" {
				return id
			}
		}
	}
	for _, key := range HostWrapperKeys {
		v := match.Get(key)
		if !v.IsObject() {
			continue
		}
		if id, ok := idString(v.Get("id")); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

// HostIdentity collects the host's identity from the match's declared host
// ids, nested host records, and denormalized host contact fields.
func HostIdentity(match gjson.Result) Set {
	var s Set
	if !match.IsObject() {
		return s
	}
	for _, key := range HostIDAliases {
		collectID(match.Get(key), &s, 1)
	}
	for _, key := range HostWrapperKeys {
		if v := match.Get(key); v.IsObject() {
			collectRecord(v, &s, 1)
		}
	}
	for _, key := range HostEmailAliases {
		collectEmail(match.Get(key), &s)
	}
	for _, key := range HostPhoneAliases {
		collectPhone(match.Get(key), &s)
	}
	return s
}

// IsMatchHost reports whether the viewer is the match's declared host.
func IsMatchHost(viewer Set, match gjson.Result) bool {
	if viewer.IsEmpty() {
		return false
	}
	return Overlaps(viewer, HostIdentity(match))
}

// ParticipantIsHost reports whether a roster entry is the match host. With a
// known hostID the entry's ids decide; otherwise a hosting keyword or an
// is_host flag does.
func ParticipantIsHost(participant gjson.Result, hostID string) bool {
	hostID = strings.TrimSpace(hostID)
	if hostID != "" {
		return Collect(participant).HasID(hostID)
	}
	return HasHostingRole(participant)
}

// HasHostingRole reports whether a roster entry carries a hosting keyword or flag.
func HasHostingRole(entry gjson.Result) bool {
	if !entry.IsObject() {
		return false
	}
	for _, key := range []string{"is_host", "isHost"} {
		if entry.Get(key).Type == gjson.True {
			return true
		}
	}
	for _, key := range HostRoleFields {
		v := entry.Get(key)
		if v.Type != gjson.String {
			continue
		}
		if hostKeywords[strings.ToLower(strings.TrimSpace(v.Str))] {
			return true
		}
	}
	return false
}
