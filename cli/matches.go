// ABOUTME: Match snapshot CLI commands
// ABOUTME: Imports raw match feeds and lists what is stored with deduplicated roster counts
package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/feed"
	"github.com/harperreed/courtside/roster"
)

// MatchesCommand dispatches matches subcommands.
func MatchesCommand(env *Env, args []string) error {
	if len(args) == 0 {
		return usagef("matches requires a subcommand (import, list, delete)")
	}

	switch args[0] {
	case "import":
		return matchesImport(env, args[1:])
	case "list":
		return matchesList(env, args[1:])
	case "delete":
		return matchesDelete(env, args[1:])
	default:
		return usagef("unknown matches command: %s", args[0])
	}
}

func matchesImport(env *Env, args []string) error {
	fs := newFlagSet("matches import")
	file := fs.String("file", "-", "Path to match feed JSON (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	data, err := env.readInput(*file)
	if err != nil {
		return err
	}

	result, err := db.ImportMatches(env.DB, data, time.Now())
	if err != nil {
		return err
	}

	env.Log.Info().
		Str("file", *file).
		Int("count", result.Imported).
		Int("skipped", result.Skipped).
		Msg("matches imported")

	env.printf("✓ Imported %d match(es)\n", result.Imported)
	if result.Skipped > 0 {
		env.printf("  Skipped %d record(s) without a match id\n", result.Skipped)
	}
	return nil
}

func matchesList(env *Env, args []string) error {
	fs := newFlagSet("matches list")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	snapshots, err := db.ListMatchSnapshots(env.DB)
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		env.printf("No matches stored\n")
		return nil
	}

	env.printf("%s\n\n", env.heading("Stored matches"))
	w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tTITLE\tSTART\tPLAYERS\tINVITEES\tOCCUPANTS\tFETCHED")
	_, _ = fmt.Fprintln(w, "---\t-----\t-----\t-------\t--------\t---------\t-------")

	for i, match := range db.MatchPayloads(snapshots) {
		summary := roster.Summarize(match)
		start := "-"
		if t := feed.StartTime(match); t != nil {
			start = t.Local().Format("Mon Jan 2 15:04")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d/%d\t%d\t%s\n",
			snapshots[i].MatchKey,
			dash(feed.Title(match)),
			start,
			summary.ActiveParticipants, summary.RawParticipants,
			summary.RelevantInvitees, summary.RawInvitees,
			summary.Occupants,
			snapshots[i].FetchedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = w.Flush()

	env.printf("\nTotal: %d match(es)\n", len(snapshots))
	return nil
}

func matchesDelete(env *Env, args []string) error {
	fs := newFlagSet("matches delete")
	key := fs.String("match", "", "Match key (required)")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	if *key == "" {
		return usagef("--match is required")
	}

	if err := db.DeleteMatchSnapshot(env.DB, *key); err != nil {
		return err
	}

	env.Log.Info().Str("match_key", *key).Msg("match deleted")
	env.printf("✓ Match deleted: %s\n", *key)
	return nil
}
