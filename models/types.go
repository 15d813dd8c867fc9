// ABOUTME: Data models for match feeds, rosters and stored snapshots
// ABOUTME: Defines MatchView, RosterSummary, Viewer and MatchSnapshot structs
package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchType classifies a match relative to one viewer.
type MatchType string

const (
	MatchHosted    MatchType = "hosted"
	MatchJoined    MatchType = "joined"
	MatchAvailable MatchType = "available"
)

// MatchView is the UI-ready classification and counts for a match relative to one viewer.
type MatchView struct {
	ID             string     `json:"id,omitempty"`
	Title          string     `json:"title,omitempty"`
	Type           MatchType  `json:"type"`
	Occupied       int        `json:"occupied"`
	SpotsRemaining int        `json:"spotsRemaining"`
	PlayerLimit    int        `json:"playerLimit"`
	IsHost         bool       `json:"isHost"`
	IsJoined       bool       `json:"isJoined"`
	IsInvited      bool       `json:"isInvited"`
	IsPrivate      bool       `json:"isPrivate"`
	LowRoster      bool       `json:"lowRoster"`
	StartsAt       *time.Time `json:"startsAt,omitempty"`
}

// IsFull reports whether no spots remain.
func (v MatchView) IsFull() bool {
	return v.SpotsRemaining == 0
}

// RosterSummary counts the raw and deduplicated roster of one match.
type RosterSummary struct {
	MatchID            string `json:"match_id,omitempty"`
	HostID             string `json:"host_id,omitempty"`
	RawParticipants    int    `json:"raw_participants"`
	ActiveParticipants int    `json:"active_participants"`
	RawInvitees        int    `json:"raw_invitees"`
	RelevantInvitees   int    `json:"relevant_invitees"`
	AcceptedInvitees   int    `json:"accepted_invitees"`
	PendingInvitees    int    `json:"pending_invitees"`
	Occupants          int    `json:"occupants"`
}

// Viewer is a stored user profile used as the identity for feeds.
// Profile holds the raw JSON exactly as the API returned it.
type Viewer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Profile   string    `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchSnapshot is the last fetched payload for one match.
type MatchSnapshot struct {
	ID        uuid.UUID `json:"id"`
	MatchKey  string    `json:"match_key"`
	Payload   string    `json:"payload"`
	FetchedAt time.Time `json:"fetched_at"`
}
