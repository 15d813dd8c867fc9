// ABOUTME: Viewer CLI commands
// ABOUTME: Stores viewer profiles and shows the identifiers collected from them
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
)

// ViewerCommand dispatches viewer subcommands.
func ViewerCommand(env *Env, args []string) error {
	if len(args) == 0 {
		return usagef("viewer requires a subcommand (add, list, show, update)")
	}

	switch args[0] {
	case "add":
		return viewerAdd(env, args[1:])
	case "list":
		return viewerList(env, args[1:])
	case "show":
		return viewerShow(env, args[1:])
	case "update":
		return viewerUpdate(env, args[1:])
	default:
		return usagef("unknown viewer command: %s", args[0])
	}
}

// profileFromFlags reads a profile from --profile or --file.
func profileFromFlags(env *Env, inline, file string) (string, error) {
	switch {
	case inline != "" && file != "":
		return "", usagef("use either --profile or --file, not both")
	case inline != "":
		return inline, nil
	case file != "":
		data, err := env.readInput(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", nil
	}
}

func viewerAdd(env *Env, args []string) error {
	fs := newFlagSet("viewer add")
	name := fs.String("name", "", "Viewer name (required)")
	profile := fs.String("profile", "", "Profile JSON")
	file := fs.String("file", "", "Path to profile JSON (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	if *name == "" {
		return usagef("--name is required")
	}

	raw, err := profileFromFlags(env, *profile, *file)
	if err != nil {
		return err
	}

	viewer := &models.Viewer{Name: *name, Profile: raw}
	if err := db.CreateViewer(env.DB, viewer); err != nil {
		return err
	}

	ids := db.ViewerIdentity(viewer)
	env.Log.Info().Str("viewer_id", viewer.ID.String()).Msg("viewer created")

	env.printf("✓ Viewer created: %s (ID: %s)\n", viewer.Name, viewer.ID)
	if ids.IsEmpty() {
		env.printf("  warning: profile has no ids, emails or phones; every match will look available\n")
	} else {
		env.printf("  Identity: %s\n", ids)
	}
	return nil
}

func viewerList(env *Env, args []string) error {
	fs := newFlagSet("viewer list")
	query := fs.String("query", "", "Search by name")
	limit := fs.Int("limit", 50, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	viewers, err := db.FindViewers(env.DB, *query, *limit)
	if err != nil {
		return err
	}

	if len(viewers) == 0 {
		env.printf("No viewers found\n")
		return nil
	}

	env.printf("%s\n\n", env.heading("Viewers"))
	w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tIDS\tEMAILS\tPHONES\tID")
	_, _ = fmt.Fprintln(w, "----\t---\t------\t------\t--")

	for i := range viewers {
		ids := db.ViewerIdentity(&viewers[i])
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			viewers[i].Name,
			dash(strings.Join(ids.IDs(), ",")),
			dash(strings.Join(ids.Emails(), ",")),
			dash(strings.Join(ids.Phones(), ",")),
			viewers[i].ID.String()[:8])
	}
	_ = w.Flush()

	env.printf("\nTotal: %d viewer(s)\n", len(viewers))
	return nil
}

func viewerShow(env *Env, args []string) error {
	fs := newFlagSet("viewer show")
	ref := fs.String("viewer", "", "Viewer ID, ID prefix or name (required)")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	viewer, err := ResolveViewer(env.DB, *ref)
	if err != nil {
		return err
	}
	ids := db.ViewerIdentity(viewer)

	env.printf("%s\n", env.heading(viewer.Name))
	env.printf("  ID:      %s\n", viewer.ID)
	env.printf("  Created: %s\n", viewer.CreatedAt.Format("2006-01-02 15:04"))
	for _, kind := range []identity.Kind{identity.KindID, identity.KindEmail, identity.KindPhone, identity.KindPhoneDigits} {
		env.printf("  %-13s %s\n", string(kind)+":", dash(strings.Join(ids.Values(kind), ", ")))
	}
	env.printf("\nProfile:\n%s\n", gjson.Get(viewer.Profile, "@pretty").String())
	return nil
}

func viewerUpdate(env *Env, args []string) error {
	fs := newFlagSet("viewer update")
	ref := fs.String("viewer", "", "Viewer ID, ID prefix or name (required)")
	profile := fs.String("profile", "", "Profile JSON")
	file := fs.String("file", "", "Path to profile JSON (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	viewer, err := ResolveViewer(env.DB, *ref)
	if err != nil {
		return err
	}

	raw, err := profileFromFlags(env, *profile, *file)
	if err != nil {
		return err
	}
	if raw == "" {
		return usagef("--profile or --file is required")
	}

	if err := db.UpdateViewerProfile(env.DB, viewer.ID, raw); err != nil {
		return err
	}

	env.Log.Info().Str("viewer_id", viewer.ID.String()).Msg("viewer profile updated")
	env.printf("✓ Viewer updated: %s\n", viewer.Name)
	env.printf("  Identity: %s\n", identity.CollectJSON([]byte(raw)))
	return nil
}
