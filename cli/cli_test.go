// ABOUTME: Tests for courtside CLI commands
// ABOUTME: Runs commands against a temporary database and checks their printed output
package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/feed"
	"github.com/harperreed/courtside/models"
)

const feedJSON = `{"matches": [
	{"id": "m1", "title": "Tuesday doubles", "host_id": 1, "player_limit": 4,
	 "participants": [{"player_id": 1, "status": "hosting"}, {"player_id": 2, "status": "active"}],
	 "invitees": [{"invitee_id": 3, "status": "pending"}]},
	{"id": "m2", "is_private": true, "host_id": 9, "participants": [{"player_id": 9}]},
	{"id": "m3", "title": "Open rally", "host_id": 7, "participants": [{"email": "sam@example.com"}]}
]}`

func setupTestEnv(t *testing.T) (*Env, *bytes.Buffer) {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "courtside.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	out := &bytes.Buffer{}
	return &Env{
		DB:      database,
		Builder: feed.NewBuilder(),
		Log:     zerolog.Nop(),
		Out:     out,
		In:      strings.NewReader(""),
	}, out
}

func seed(t *testing.T, env *Env) {
	t.Helper()
	env.In = strings.NewReader(feedJSON)
	require.NoError(t, MatchesCommand(env, []string{"import", "--file", "-"}))
	require.NoError(t, ViewerCommand(env, []string{"add", "--name", "Sam", "--profile", `{"id": 2, "email": "SAM@example.com"}`}))
}

func TestViewerAddListShow(t *testing.T) {
	env, out := setupTestEnv(t)

	require.NoError(t, ViewerCommand(env, []string{"add", "--name", "Sam", "--profile", `{"user": {"id": 2, "phone": "415 555 0100"}}`}))
	assert.Contains(t, out.String(), "✓ Viewer created: Sam")
	assert.Contains(t, out.String(), "id:2")

	out.Reset()
	require.NoError(t, ViewerCommand(env, []string{"list"}))
	assert.Contains(t, out.String(), "+14155550100")
	assert.Contains(t, out.String(), "Total: 1 viewer(s)")

	out.Reset()
	require.NoError(t, ViewerCommand(env, []string{"show", "--viewer", "sam"}))
	assert.Contains(t, out.String(), "phone_digits:")
	assert.Contains(t, out.String(), "4155550100")
}

func TestViewerAddFromFile(t *testing.T) {
	env, out := setupTestEnv(t)

	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 5}`), 0644))

	require.NoError(t, ViewerCommand(env, []string{"add", "--name", "Lee", "--file", path}))
	assert.Contains(t, out.String(), "id:5")

	out.Reset()
	require.NoError(t, ViewerCommand(env, []string{"add", "--name", "Empty"}))
	assert.Contains(t, out.String(), "warning")
}

func TestViewerUsageErrors(t *testing.T) {
	env, _ := setupTestEnv(t)

	tests := [][]string{
		{},
		{"bogus"},
		{"add"},
		{"add", "--name", "x", "--profile", "{}", "--file", "a.json"},
		{"show"},
		{"update", "--viewer", "nobody"},
	}
	for _, args := range tests {
		err := ViewerCommand(env, args)
		assert.Error(t, err, "args %v", args)
	}

	assert.True(t, IsUsageError(ViewerCommand(env, []string{"add"})))
	assert.ErrorIs(t, ViewerCommand(env, []string{"show", "--viewer", "nobody"}), db.ErrNotFound)
}

func TestViewerUpdate(t *testing.T) {
	env, out := setupTestEnv(t)
	require.NoError(t, ViewerCommand(env, []string{"add", "--name", "Kim", "--profile", `{"id": 1}`}))

	out.Reset()
	require.NoError(t, ViewerCommand(env, []string{"update", "--viewer", "Kim", "--profile", `{"id": 8}`}))
	assert.Contains(t, out.String(), "id:8")

	err := ViewerCommand(env, []string{"update", "--viewer", "Kim"})
	assert.True(t, IsUsageError(err))
}

func TestMatchesImportAndList(t *testing.T) {
	env, out := setupTestEnv(t)

	env.In = strings.NewReader(`[{"id": "a", "title": "Ladder"}, {"title": "no id"}]`)
	require.NoError(t, MatchesCommand(env, []string{"import"}))
	assert.Contains(t, out.String(), "Imported 1 match(es)")
	assert.Contains(t, out.String(), "Skipped 1")

	out.Reset()
	require.NoError(t, MatchesCommand(env, []string{"list"}))
	assert.Contains(t, out.String(), "Ladder")
	assert.Contains(t, out.String(), "Total: 1 match(es)")

	out.Reset()
	require.NoError(t, MatchesCommand(env, []string{"delete", "--match", "a"}))
	out.Reset()
	require.NoError(t, MatchesCommand(env, []string{"list"}))
	assert.Contains(t, out.String(), "No matches stored")

	env.In = strings.NewReader(`not json`)
	assert.Error(t, MatchesCommand(env, []string{"import"}))
}

func TestFeedCommand(t *testing.T) {
	env, out := setupTestEnv(t)
	seed(t, env)

	out.Reset()
	require.NoError(t, FeedCommand(env, []string{"--viewer", "Sam"}))
	text := out.String()
	assert.Contains(t, text, "Tuesday doubles")
	assert.Contains(t, text, "Open rally")
	assert.NotContains(t, text, "m2")
	assert.Contains(t, text, "Total: 2 match(es)")

	out.Reset()
	require.NoError(t, FeedCommand(env, []string{"--viewer", "Sam", "--json"}))
	var views []models.MatchView
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, models.MatchJoined, views[0].Type)
	assert.Equal(t, 2, views[0].Occupied)
	assert.Equal(t, 2, views[0].SpotsRemaining)
	assert.Equal(t, models.MatchJoined, views[1].Type, "joined by email")

	out.Reset()
	require.NoError(t, FeedCommand(env, []string{"--viewer", "Sam", "--type", "available", "--json"}))
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	assert.Empty(t, views)

	assert.True(t, IsUsageError(FeedCommand(env, []string{"--viewer", "Sam", "--type", "mine"})))
	assert.True(t, IsUsageError(FeedCommand(env, nil)))
}

func TestRosterCommand(t *testing.T) {
	env, out := setupTestEnv(t)
	seed(t, env)

	out.Reset()
	require.NoError(t, RosterCommand(env, []string{"--match", "m1"}))
	assert.Contains(t, out.String(), "2 active of 2 listed")
	assert.Contains(t, out.String(), "1 pending")

	out.Reset()
	require.NoError(t, RosterCommand(env, []string{"--match", "m1", "--json"}))
	var summary models.RosterSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, 2, summary.Occupants)
	assert.Equal(t, "1", summary.HostID)

	assert.ErrorIs(t, RosterCommand(env, []string{"--match", "nope"}), db.ErrNotFound)
}

func TestLeaveCommand(t *testing.T) {
	env, out := setupTestEnv(t)
	seed(t, env)

	out.Reset()
	require.NoError(t, LeaveCommand(env, []string{"--match", "m1", "--viewer", "Sam"}))
	assert.Contains(t, out.String(), "Removed Sam from m1 (1 entry)")

	snapshot, err := db.GetMatchSnapshot(env.DB, "m1")
	require.NoError(t, err)
	assert.NotContains(t, snapshot.Payload, `"player_id": 2`)

	out.Reset()
	require.NoError(t, LeaveCommand(env, []string{"--match", "m1", "--viewer", "Sam"}))
	assert.Contains(t, out.String(), "is not on the roster")

	out.Reset()
	require.NoError(t, FeedCommand(env, []string{"--viewer", "Sam", "--json"}))
	var views []models.MatchView
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "m1", views[0].ID, "pruned match keeps its position")
	assert.Equal(t, models.MatchAvailable, views[0].Type)
	assert.Equal(t, 1, views[0].Occupied)
}

func TestWhoisCommand(t *testing.T) {
	env, out := setupTestEnv(t)
	seed(t, env)

	out.Reset()
	require.NoError(t, WhoisCommand(env, []string{"--viewer", "Sam", "--record", `{"contact": {"email": " sam@EXAMPLE.com"}}`}))
	assert.Contains(t, out.String(), "✓ Same person")
	assert.Contains(t, out.String(), "email: sam@example.com")

	out.Reset()
	require.NoError(t, WhoisCommand(env, []string{"--viewer", "Sam", "--record", `{"player_id": 3}`}))
	assert.Contains(t, out.String(), "No shared identifiers")
	assert.NotContains(t, out.String(), "Same email domain")

	out.Reset()
	require.NoError(t, WhoisCommand(env, []string{"--viewer", "Sam", "--record", `{"email": "alex@example.com"}`}))
	assert.Contains(t, out.String(), "Same email domain only (not a match): example.com")

	assert.True(t, IsUsageError(WhoisCommand(env, []string{"--viewer", "Sam"})))
	assert.True(t, IsUsageError(WhoisCommand(env, []string{"--viewer", "Sam", "--record", "{"})))
}

func TestResolveViewerByPrefix(t *testing.T) {
	env, _ := setupTestEnv(t)
	viewer := &models.Viewer{Name: "Pat", Profile: `{"id": 1}`}
	require.NoError(t, db.CreateViewer(env.DB, viewer))

	got, err := ResolveViewer(env.DB, viewer.ID.String()[:8])
	require.NoError(t, err)
	assert.Equal(t, viewer.ID, got.ID)

	got, err = ResolveViewer(env.DB, viewer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Pat", got.Name)
}

func TestNewMCPServerRegistersTools(t *testing.T) {
	env, _ := setupTestEnv(t)
	assert.NotNil(t, NewMCPServer(env, "test"))
}
