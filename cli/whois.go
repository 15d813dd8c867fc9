// ABOUTME: Identity comparison CLI command
// ABOUTME: Explains whether a viewer matches an arbitrary API record and on which identifiers
package cli

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/contact"
	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/identity"
)

// WhoisCommand compares a viewer against a record given inline or from a file.
func WhoisCommand(env *Env, args []string) error {
	fs := newFlagSet("whois")
	ref := fs.String("viewer", "", "Viewer ID, ID prefix or name (required)")
	record := fs.String("record", "", "Record JSON to compare")
	file := fs.String("file", "", "Path to record JSON (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	raw, err := profileFromFlags(env, *record, *file)
	if err != nil {
		return err
	}
	if raw == "" {
		return usagef("--record or --file is required")
	}
	if !gjson.Valid(raw) {
		return usagef("record is not valid JSON")
	}

	viewer, err := ResolveViewer(env.DB, *ref)
	if err != nil {
		return err
	}

	viewerIDs := db.ViewerIdentity(viewer)
	recordIDs := identity.Collect(gjson.Parse(raw))

	env.printf("Viewer: %s %s\n", viewer.Name, viewerIDs)
	env.printf("Record: %s\n", recordIDs)

	if !identity.Overlaps(viewerIDs, recordIDs) {
		env.printf("✗ No shared identifiers\n")
		if domains := sharedDomains(viewerIDs, recordIDs); len(domains) > 0 {
			env.printf("  Same email domain only (not a match): %s\n", strings.Join(domains, ", "))
		}
		return nil
	}

	env.printf("✓ Same person\n")
	shared := identity.Shared(viewerIDs, recordIDs)
	for _, kind := range []identity.Kind{identity.KindID, identity.KindEmail, identity.KindPhone, identity.KindPhoneDigits} {
		if values := shared[kind]; len(values) > 0 {
			env.printf("  %s: %s\n", kind, strings.Join(values, ", "))
		}
	}
	return nil
}

func sharedDomains(a, b identity.Set) []string {
	seen := make(map[string]bool)
	for _, email := range a.Emails() {
		if d := contact.ExtractDomain(email); d != "" {
			seen[d] = true
		}
	}

	var shared []string
	for _, email := range b.Emails() {
		d := contact.ExtractDomain(email)
		if seen[d] {
			shared = append(shared, d)
			delete(seen, d)
		}
	}
	return shared
}
