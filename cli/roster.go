// ABOUTME: Roster CLI commands
// ABOUTME: Summarizes a stored match roster and prunes a viewer who left
package cli

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/models"
	"github.com/harperreed/courtside/roster"
)

// RosterCommand prints the raw and deduplicated roster counts of a stored match.
func RosterCommand(env *Env, args []string) error {
	fs := newFlagSet("roster")
	key := fs.String("match", "", "Match key (required)")
	asJSON := fs.Bool("json", false, "Print the summary as JSON")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	if *key == "" {
		return usagef("--match is required")
	}

	snapshot, err := db.GetMatchSnapshot(env.DB, *key)
	if err != nil {
		return err
	}

	match := gjson.Parse(snapshot.Payload)
	summary := roster.Summarize(match)

	if *asJSON {
		enc := json.NewEncoder(env.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	env.printf("%s\n", env.heading("Roster for "+snapshot.MatchKey))
	printSummary(env, summary)

	active := roster.FilterActiveParticipants(roster.ParticipantsOf(match))
	if len(active) > 0 {
		env.printf("\nActive participants:\n")
		for _, e := range active {
			env.printf("  %s %s\n", e.Identity, dash(e.Status))
		}
	}

	relevant := roster.FilterRelevantInvitees(roster.InviteesOf(match))
	if len(relevant) > 0 {
		env.printf("\nInvitees:\n")
		for _, e := range relevant {
			env.printf("  %s %s\n", e.Identity, dash(e.Status))
		}
	}
	return nil
}

// LeaveCommand removes a viewer's entries from a stored match after they leave it.
func LeaveCommand(env *Env, args []string) error {
	fs := newFlagSet("leave")
	key := fs.String("match", "", "Match key (required)")
	ref := fs.String("viewer", "", "Viewer ID, ID prefix or name (required)")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	if *key == "" {
		return usagef("--match is required")
	}

	viewer, err := ResolveViewer(env.DB, *ref)
	if err != nil {
		return err
	}
	member := db.ViewerIdentity(viewer)
	if member.IsEmpty() {
		return usagef("viewer %s has no identifiers to remove", viewer.Name)
	}

	snapshot, err := db.GetMatchSnapshot(env.DB, *key)
	if err != nil {
		return err
	}

	match := gjson.Parse(snapshot.Payload)
	pruned, err := roster.PruneDepartedMember(match, member)
	if err != nil {
		return err
	}

	before := roster.Summarize(match)
	after := roster.Summarize(gjson.ParseBytes(pruned))
	removed := before.RawParticipants + before.RawInvitees - after.RawParticipants - after.RawInvitees
	if removed == 0 {
		env.printf("%s is not on the roster of %s\n", viewer.Name, snapshot.MatchKey)
		return nil
	}

	snapshot.Payload = string(pruned)
	if err := db.SaveMatchSnapshot(env.DB, snapshot); err != nil {
		return err
	}

	env.Log.Info().
		Str("viewer_id", viewer.ID.String()).
		Str("match_key", snapshot.MatchKey).
		Int("count", removed).
		Msg("member pruned")

	env.printf("✓ Removed %s from %s (%d entr%s)\n", viewer.Name, snapshot.MatchKey, removed, plural(removed, "y", "ies"))
	printSummary(env, after)
	return nil
}

func printSummary(env *Env, s models.RosterSummary) {
	env.printf("  Host:         %s\n", dash(s.HostID))
	env.printf("  Participants: %d active of %d listed\n", s.ActiveParticipants, s.RawParticipants)
	env.printf("  Invitees:     %d relevant of %d listed (%d accepted, %d pending)\n",
		s.RelevantInvitees, s.RawInvitees, s.AcceptedInvitees, s.PendingInvitees)
	env.printf("  Occupants:    %d\n", s.Occupants)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
