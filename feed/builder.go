// ABOUTME: Match view-model builder for a single viewer
// ABOUTME: Classifies matches as hosted/joined/available, counts spots and hides private matches
package feed

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
	"github.com/harperreed/courtside/roster"
)

const (
	// DefaultPlayerLimit applies when a match declares no usable limit.
	DefaultPlayerLimit = 4

	// DefaultLowRosterWindow is how close to start time an unfilled hosted match raises an alert.
	DefaultLowRosterWindow = 24 * time.Hour
)

// PlayerLimitFields are the match fields declaring the player limit.
var PlayerLimitFields = []string{
	"player_limit", "playerLimit",
	"max_players", "maxPlayers",
	"capacity",
}

// PrivacyFlagFields are boolean match fields marking a private match.
var PrivacyFlagFields = []string{
	"is_private", "isPrivate",
	"private",
}

// PrivacyLabelFields are match fields whose value "private" marks a private match.
var PrivacyLabelFields = []string{
	"privacy",
	"visibility",
	"match_type", "matchType",
}

// StartTimeFields are the match fields holding the scheduled start.
var StartTimeFields = []string{
	"start_time", "startTime",
	"start_date_time", "startDateTime",
	"starts_at", "startsAt",
	"scheduled_at", "scheduledAt",
}

// TitleFields are the match fields used as a display title.
var TitleFields = []string{
	"title",
	"name",
	"location_name", "locationName",
	"location",
}

// Builder builds match view-models. The zero value uses the defaults and the
// wall clock.
type Builder struct {
	PlayerLimit     int
	LowRosterWindow time.Duration
	Now             func() time.Time
}

// NewBuilder returns a builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		PlayerLimit:     DefaultPlayerLimit,
		LowRosterWindow: DefaultLowRosterWindow,
		Now:             time.Now,
	}
}

// Build derives the view-model of one match for viewer. The second result is
// false when the match is private and the viewer is neither host, joined
// player nor invitee; such matches must not be shown at all.
func (b *Builder) Build(match gjson.Result, viewer identity.Set) (models.MatchView, bool) {
	active := roster.FilterActiveParticipants(roster.ParticipantsOf(match))
	relevant := roster.FilterRelevantInvitees(roster.InviteesOf(match))
	accepted := roster.AcceptedInvitees(relevant)

	isHost := identity.IsMatchHost(viewer, match)
	if !isHost && identity.HostID(match) == "" {
		isHost = hostingEntryMatches(active, viewer)
	}
	isJoined := anyMatches(active, viewer) || anyMatches(accepted, viewer)
	isInvited := anyMatches(relevant, viewer)
	isPrivate := IsPrivate(match)

	if isPrivate && !isHost && !isJoined && !isInvited {
		return models.MatchView{}, false
	}

	limit := b.playerLimit(match)
	occupied := roster.CountUniqueOccupants(active, accepted)
	view := models.MatchView{
		ID:             identity.IDOf(match.Get("id")),
		Title:          Title(match),
		Type:           classify(isHost, isJoined),
		Occupied:       occupied,
		SpotsRemaining: max(limit-occupied, 0),
		PlayerLimit:    limit,
		IsHost:         isHost,
		IsJoined:       isJoined,
		IsInvited:      isInvited,
		IsPrivate:      isPrivate,
		StartsAt:       StartTime(match),
	}
	view.LowRoster = b.lowRoster(view)

	return view, true
}

// BuildFeed builds view-models for every match visible to viewer, in input order.
func (b *Builder) BuildFeed(matches []gjson.Result, viewer identity.Set) []models.MatchView {
	views := make([]models.MatchView, 0, len(matches))
	for _, match := range matches {
		if view, ok := b.Build(match, viewer); ok {
			views = append(views, view)
		}
	}
	return views
}

func classify(isHost, isJoined bool) models.MatchType {
	switch {
	case isHost:
		return models.MatchHosted
	case isJoined:
		return models.MatchJoined
	default:
		return models.MatchAvailable
	}
}

func (b *Builder) playerLimit(match gjson.Result) int {
	for _, key := range PlayerLimitFields {
		v := match.Get(key)
		if v.Type != gjson.Number && v.Type != gjson.String {
			continue
		}
		if n := v.Int(); n > 0 {
			return int(n)
		}
	}
	if b.PlayerLimit > 0 {
		return b.PlayerLimit
	}
	return DefaultPlayerLimit
}

func (b *Builder) lowRoster(view models.MatchView) bool {
	if !view.IsHost || view.SpotsRemaining == 0 || view.StartsAt == nil {
		return false
	}
	window := b.LowRosterWindow
	if window <= 0 {
		window = DefaultLowRosterWindow
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	until := view.StartsAt.Sub(now())
	return until > 0 && until <= window
}

// IsPrivate reports whether the match is flagged private.
func IsPrivate(match gjson.Result) bool {
	for _, key := range PrivacyFlagFields {
		if match.Get(key).Type == gjson.True {
			return true
		}
	}
	for _, key := range PrivacyLabelFields {
		v := match.Get(key)
		if v.Type == gjson.String && strings.EqualFold(strings.TrimSpace(v.Str), "private") {
			return true
		}
	}
	return false
}

// Title returns the first non-blank display title of the match.
func Title(match gjson.Result) string {
	return firstString(match, TitleFields)
}

// StartTime returns the match's scheduled start, or nil when absent or unparseable.
func StartTime(match gjson.Result) *time.Time {
	for _, key := range StartTimeFields {
		v := match.Get(key)
		if v.Type != gjson.String {
			continue
		}
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(v.Str)); err == nil {
			return &t
		}
	}
	return nil
}

// hostingEntryMatches covers matches that declare no host id and mark the
// host only through a roster entry's status.
func hostingEntryMatches(entries []roster.Entry, viewer identity.Set) bool {
	for _, e := range entries {
		if identity.ParticipantIsHost(e.Raw, "") && identity.Overlaps(viewer, e.Identity) {
			return true
		}
	}
	return false
}

func anyMatches(entries []roster.Entry, viewer identity.Set) bool {
	for _, e := range entries {
		if identity.Overlaps(viewer, e.Identity) {
			return true
		}
	}
	return false
}

func firstString(match gjson.Result, fields []string) string {
	for _, key := range fields {
		v := match.Get(key)
		if v.Type == gjson.String {
			if s := strings.TrimSpace(v.Str); s != "" {
				return s
			}
		}
	}
	return ""
}
