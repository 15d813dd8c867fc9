// ABOUTME: Lifecycle status vocabulary for participants and invitees
// ABOUTME: Recognizes departure keywords, departure timestamps and active flags
package roster

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ParticipantStatusFields are the fields read for a participant's status.
var ParticipantStatusFields = []string{
	"status",
	"participant_status", "participantStatus",
	"membership_status", "membershipStatus",
	"state",
}

// InviteeStatusFields are the fields read for an invitee's status.
var InviteeStatusFields = []string{
	"status",
	"invite_status", "inviteStatus",
	"invitation_status", "invitationStatus",
	"response_status", "responseStatus",
	"response",
}

// DepartureFields are timestamps that, when populated, mean the person left.
var DepartureFields = []string{
	"left_at", "leftAt",
	"removed_at", "removedAt",
	"cancelled_at", "cancelledAt",
	"canceled_at", "canceledAt",
	"declined_at", "declinedAt",
	"withdrawn_at", "withdrawnAt",
	"kicked_at", "kickedAt",
	"deleted_at", "deletedAt",
}

// ActiveFlagFields are boolean flags some payloads use instead of a status.
var ActiveFlagFields = []string{
	"is_active", "isActive",
	"active",
}

var inactiveParticipantStatuses = keywords(
	"left", "removed", "cancelled", "canceled", "declined",
	"withdrawn", "kicked", "inactive", "rejected", "expired", "deleted",
)

var inactiveInviteeStatuses = keywords(
	"rejected", "declined", "cancelled", "canceled", "revoked",
	"expired", "removed", "left", "withdrawn", "deleted",
)

var acceptedInviteeStatuses = keywords(
	"accepted", "joined", "confirmed", "attending",
)

func keywords(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// NormalizeStatus lowercases and trims a status label.
func NormalizeStatus(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// StatusOf returns the first non-blank status among fields, normalized.
func StatusOf(record gjson.Result, fields []string) string {
	if !record.IsObject() {
		return ""
	}
	for _, key := range fields {
		v := record.Get(key)
		if v.Type != gjson.String {
			continue
		}
		if status := NormalizeStatus(v.Str); status != "" {
			return status
		}
	}
	return ""
}

// HasDeparted reports whether any departure timestamp is populated.
func HasDeparted(record gjson.Result) bool {
	if !record.IsObject() {
		return false
	}
	for _, key := range DepartureFields {
		if populated(record.Get(key)) {
			return true
		}
	}
	return false
}

// IsActiveParticipant reports whether a participant has no departure signal:
// no inactive keyword in any status field and no populated departure timestamp.
func IsActiveParticipant(record gjson.Result) bool {
	if HasDeparted(record) {
		return false
	}
	return !anyStatusIn(record, ParticipantStatusFields, inactiveParticipantStatuses)
}

// IsRelevantInvitee reports whether an invitation still counts toward visibility.
func IsRelevantInvitee(record gjson.Result) bool {
	if HasDeparted(record) {
		return false
	}
	if explicitlyInactive(record) {
		return false
	}
	return !anyStatusIn(record, InviteeStatusFields, inactiveInviteeStatuses)
}

// IsAcceptedInvitee reports whether a relevant invitee has accepted.
func IsAcceptedInvitee(record gjson.Result) bool {
	if !IsRelevantInvitee(record) {
		return false
	}
	return anyStatusIn(record, InviteeStatusFields, acceptedInviteeStatuses)
}

func anyStatusIn(record gjson.Result, fields []string, vocabulary map[string]bool) bool {
	if !record.IsObject() {
		return false
	}
	for _, key := range fields {
		v := record.Get(key)
		if v.Type == gjson.String && vocabulary[NormalizeStatus(v.Str)] {
			return true
		}
	}
	return false
}

func explicitlyInactive(record gjson.Result) bool {
	if !record.IsObject() {
		return false
	}
	for _, key := range ActiveFlagFields {
		if record.Get(key).Type == gjson.False {
			return true
		}
	}
	return false
}

func populated(v gjson.Result) bool {
	switch v.Type {
	case gjson.String:
		return strings.TrimSpace(v.Str) != ""
	case gjson.Number:
		return v.Num != 0
	case gjson.True:
		return true
	case gjson.JSON:
		filled := false
		v.ForEach(func(_, _ gjson.Result) bool {
			filled = true
			return false
		})
		return filled
	}
	return false
}
