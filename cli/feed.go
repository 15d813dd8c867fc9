// ABOUTME: Feed CLI command
// ABOUTME: Prints a viewer's classified match feed as a table or JSON
package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/models"
)

// FeedCommand builds and prints the feed of one viewer from stored matches.
func FeedCommand(env *Env, args []string) error {
	fs := newFlagSet("feed")
	ref := fs.String("viewer", "", "Viewer ID, ID prefix or name (required)")
	asJSON := fs.Bool("json", false, "Print view-models as JSON")
	only := fs.String("type", "", "Only show hosted, joined or available matches")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	if *only != "" {
		switch models.MatchType(*only) {
		case models.MatchHosted, models.MatchJoined, models.MatchAvailable:
		default:
			return usagef("--type must be hosted, joined or available")
		}
	}

	views, err := ViewerFeed(env, *ref)
	if err != nil {
		return err
	}

	if *only != "" {
		filtered := views[:0]
		for _, v := range views {
			if v.Type == models.MatchType(*only) {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	if *asJSON {
		enc := json.NewEncoder(env.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	if len(views) == 0 {
		env.printf("No matches in feed\n")
		return nil
	}

	env.printf("%s\n\n", env.heading("Match feed"))
	w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tMATCH\tTITLE\tSTART\tPLAYERS\tSPOTS\tFLAGS")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----\t-----\t-------\t-----\t-----")

	for _, v := range views {
		start := "-"
		if v.StartsAt != nil {
			start = v.StartsAt.Local().Format("Mon Jan 2 15:04")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%d\t%s\n",
			v.Type, dash(v.ID), dash(v.Title), start,
			v.Occupied, v.PlayerLimit, v.SpotsRemaining, dash(Flags(v)))
	}
	_ = w.Flush()

	env.printf("\nTotal: %d match(es)\n", len(views))
	return nil
}

// ViewerFeed resolves the viewer and builds its feed from every stored match.
func ViewerFeed(env *Env, ref string) ([]models.MatchView, error) {
	viewer, err := ResolveViewer(env.DB, ref)
	if err != nil {
		return nil, err
	}

	snapshots, err := db.ListMatchSnapshots(env.DB)
	if err != nil {
		return nil, err
	}

	views := env.Builder.BuildFeed(db.MatchPayloads(snapshots), db.ViewerIdentity(viewer))

	env.Log.Debug().
		Str("viewer_id", viewer.ID.String()).
		Int("count", len(views)).
		Int("hidden", len(snapshots)-len(views)).
		Msg("feed built")

	return views, nil
}

// Flags summarizes the boolean view-model fields for table output.
func Flags(v models.MatchView) string {
	var flags []string
	if v.IsHost {
		flags = append(flags, "host")
	}
	if v.IsJoined && !v.IsHost {
		flags = append(flags, "joined")
	}
	if v.IsInvited {
		flags = append(flags, "invited")
	}
	if v.IsPrivate {
		flags = append(flags, "private")
	}
	if v.IsFull() {
		flags = append(flags, "full")
	}
	if v.LowRoster {
		flags = append(flags, "low-roster")
	}
	return strings.Join(flags, ",")
}
