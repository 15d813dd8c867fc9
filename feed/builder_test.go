package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
)

func TestBuildEndToEnd(t *testing.T) {
	match := gjson.Parse(`{
		"host_id": 1,
		"player_limit": 4,
		"participants": [{"player_id": 1, "status": "hosting"}, {"player_id": 2, "status": "active"}],
		"invitees": [{"invitee_id": 3, "status": "pending"}]
	}`)

	view, ok := NewBuilder().Build(match, identity.FromID("2"))
	require.True(t, ok)
	assert.Equal(t, models.MatchJoined, view.Type)
	assert.Equal(t, 2, view.Occupied)
	assert.Equal(t, 2, view.SpotsRemaining)
	assert.False(t, view.IsHost)
	assert.True(t, view.IsJoined)
	assert.False(t, view.IsInvited)
}

func TestBuildClassification(t *testing.T) {
	match := gjson.Parse(`{
		"id": 50,
		"host_id": 1,
		"player_limit": 4,
		"participants": [{"player_id": 1, "status": "hosting"}, {"player_id": 2}],
		"invitees": [{"invitee_id": 3, "status": "pending"}, {"invitee_id": 4, "status": "accepted"}]
	}`)
	b := NewBuilder()

	tests := []struct {
		name      string
		viewer    identity.Set
		wantType  models.MatchType
		isHost    bool
		isJoined  bool
		isInvited bool
	}{
		{"host", identity.FromID("1"), models.MatchHosted, true, true, false},
		{"participant", identity.FromID("2"), models.MatchJoined, false, true, false},
		{"pending invitee", identity.FromID("3"), models.MatchAvailable, false, false, true},
		{"accepted invitee", identity.FromID("4"), models.MatchJoined, false, true, true},
		{"stranger", identity.FromID("9"), models.MatchAvailable, false, false, false},
		{"anonymous", identity.NewSet(), models.MatchAvailable, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, ok := b.Build(match, tt.viewer)
			require.True(t, ok)
			assert.Equal(t, "50", view.ID)
			assert.Equal(t, tt.wantType, view.Type)
			assert.Equal(t, tt.isHost, view.IsHost)
			assert.Equal(t, tt.isJoined, view.IsJoined)
			assert.Equal(t, tt.isInvited, view.IsInvited)
			assert.Equal(t, 3, view.Occupied)
			assert.Equal(t, 1, view.SpotsRemaining)
		})
	}
}

func TestPrivateMatchVisibility(t *testing.T) {
	match := gjson.Parse(`{
		"is_private": true,
		"host_id": 3,
		"participants": [{"player_id": 4}]
	}`)
	b := NewBuilder()

	_, ok := b.Build(match, identity.FromID("9"))
	assert.False(t, ok)
	assert.Empty(t, b.BuildFeed([]gjson.Result{match}, identity.FromID("9")))

	views := b.BuildFeed([]gjson.Result{match}, identity.FromID("4"))
	require.Len(t, views, 1)
	assert.Equal(t, models.MatchJoined, views[0].Type)
	assert.True(t, views[0].IsPrivate)

	views = b.BuildFeed([]gjson.Result{match}, identity.FromID("3"))
	require.Len(t, views, 1)
	assert.Equal(t, models.MatchHosted, views[0].Type)
}

func TestPrivateMatchVisibleToInvitee(t *testing.T) {
	match := gjson.Parse(`{
		"privacy": "Private",
		"host_id": 3,
		"invitees": [{"invitee_id": 5, "status": "pending"}, {"invitee_id": 6, "status": "rejected"}]
	}`)
	b := NewBuilder()

	view, ok := b.Build(match, identity.FromID("5"))
	require.True(t, ok)
	assert.True(t, view.IsInvited)
	assert.Equal(t, models.MatchAvailable, view.Type)

	_, ok = b.Build(match, identity.FromID("6"))
	assert.False(t, ok, "rejected invitees lose access to private matches")
}

func TestPrivateMatchHiddenFromDepartedParticipant(t *testing.T) {
	match := gjson.Parse(`{
		"visibility": "private",
		"host_id": 3,
		"participants": [{"player_id": 4, "status": "active", "left_at": "2024-01-01T00:00:00Z"}]
	}`)

	_, ok := NewBuilder().Build(match, identity.FromID("4"))
	assert.False(t, ok)
}

func TestBuildHostFromHostingStatus(t *testing.T) {
	match := gjson.Parse(`{"participants": [{"player_id": 1, "status": "hosting"}, {"player_id": 2}]}`)
	b := NewBuilder()

	view, ok := b.Build(match, identity.FromID("1"))
	require.True(t, ok)
	assert.Equal(t, models.MatchHosted, view.Type)

	declared := gjson.Parse(`{"host_id": 2, "participants": [{"player_id": 1, "status": "hosting"}, {"player_id": 2}]}`)
	view, ok = b.Build(declared, identity.FromID("1"))
	require.True(t, ok)
	assert.Equal(t, models.MatchJoined, view.Type, "declared host id wins over status keyword")
}

func TestBuildHostByContact(t *testing.T) {
	match := gjson.Parse(`{"host_id": 77, "host_email": "Coach@Example.com", "participants": []}`)
	viewer := identity.Collect(gjson.Parse(`{"id": 5, "profile": {"email": "coach@example.com"}}`))

	view, ok := NewBuilder().Build(match, viewer)
	require.True(t, ok)
	assert.True(t, view.IsHost)
	assert.Equal(t, models.MatchHosted, view.Type)
}

func TestSpotsRemaining(t *testing.T) {
	full := gjson.Parse(`{
		"maxPlayers": 2,
		"participants": [{"player_id": 1}, {"player_id": 2}, {"player_id": 3}]
	}`)
	view, ok := NewBuilder().Build(full, identity.NewSet())
	require.True(t, ok)
	assert.Equal(t, 3, view.Occupied)
	assert.Equal(t, 0, view.SpotsRemaining)
	assert.True(t, view.IsFull())

	b := &Builder{PlayerLimit: 2}
	view, ok = b.Build(gjson.Parse(`{"participants": [{"player_id": 1}]}`), identity.NewSet())
	require.True(t, ok)
	assert.Equal(t, 2, view.PlayerLimit)
	assert.Equal(t, 1, view.SpotsRemaining)

	view, ok = b.Build(gjson.Parse(`{"player_limit": "6"}`), identity.NewSet())
	require.True(t, ok)
	assert.Equal(t, 6, view.PlayerLimit)
}

func TestLowRoster(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	b := &Builder{PlayerLimit: 4, LowRosterWindow: 24 * time.Hour, Now: func() time.Time { return now }}

	soon := gjson.Parse(`{"host_id": 1, "start_time": "2024-06-02T09:00:00Z", "participants": [{"player_id": 1}]}`)
	view, ok := b.Build(soon, identity.FromID("1"))
	require.True(t, ok)
	require.NotNil(t, view.StartsAt)
	assert.True(t, view.LowRoster)

	later := gjson.Parse(`{"host_id": 1, "start_time": "2024-06-10T09:00:00Z", "participants": [{"player_id": 1}]}`)
	view, _ = b.Build(later, identity.FromID("1"))
	assert.False(t, view.LowRoster)

	past := gjson.Parse(`{"host_id": 1, "start_time": "2024-05-30T09:00:00Z"}`)
	view, _ = b.Build(past, identity.FromID("1"))
	assert.False(t, view.LowRoster)

	view, _ = b.Build(soon, identity.FromID("2"))
	assert.False(t, view.LowRoster, "only hosts are alerted")
}

func TestBuildFeedKeepsOrder(t *testing.T) {
	matches := gjson.Parse(`[
		{"id": "a", "host_id": 9},
		{"id": "b", "is_private": true, "host_id": 9},
		{"id": "c", "host_id": 1, "title": "Sunday doubles"}
	]`).Array()

	views := NewBuilder().BuildFeed(matches, identity.FromID("1"))
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].ID)
	assert.Equal(t, "c", views[1].ID)
	assert.Equal(t, "Sunday doubles", views[1].Title)
	assert.Equal(t, models.MatchHosted, views[1].Type)
}

func TestBuildIsDeterministic(t *testing.T) {
	match := gjson.Parse(`{"host_id": 1, "participants": [{"player_id": 1}, {"email": "x@example.com"}], "invitees": [{"email": "X@example.com", "status": "accepted"}]}`)
	viewer := identity.FromID("1")
	b := &Builder{Now: func() time.Time { return time.Unix(0, 0) }}

	first, _ := b.Build(match, viewer)
	second, _ := b.Build(match, viewer)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, first.Occupied)
}

func TestBuildCountsLinkedDuplicatesOnce(t *testing.T) {
	match := gjson.Parse(`{
		"player_limit": 4,
		"participants": [
			{"player_id": 1},
			{"player_id": 1, "email": "sam@example.com"},
			{"email": "sam@example.com"}
		]
	}`)

	view, ok := NewBuilder().Build(match, identity.FromID("9"))
	require.True(t, ok)
	assert.Equal(t, 1, view.Occupied)
	assert.Equal(t, 3, view.SpotsRemaining)
}
