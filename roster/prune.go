// ABOUTME: Local roster pruning after a member leaves a match
// ABOUTME: Returns a rewritten copy of the match JSON without the departing member's entries
package roster

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/harperreed/courtside/identity"
)

// PruneDepartedMember returns a copy of the match JSON with every participant
// and invitee entry matching member removed. The input is not modified.
func PruneDepartedMember(match gjson.Result, member identity.Set) ([]byte, error) {
	out := []byte(match.Raw)
	if member.IsEmpty() || !match.IsObject() {
		return out, nil
	}

	keys := make([]string, 0, len(ParticipantListKeys)+len(InviteeListKeys))
	keys = append(keys, ParticipantListKeys...)
	keys = append(keys, InviteeListKeys...)

	for _, key := range keys {
		list := match.Get(key)
		if !list.IsArray() {
			continue
		}

		entries := list.Array()
		kept := make([]string, 0, len(entries))
		for _, entry := range entries {
			if identity.MatchesRecord(member, entry) {
				continue
			}
			kept = append(kept, entry.Raw)
		}
		if len(kept) == len(entries) {
			continue
		}

		var err error
		out, err = sjson.SetRawBytes(out, key, []byte("["+strings.Join(kept, ",")+"]"))
		if err != nil {
			return nil, fmt.Errorf("failed to prune %s: %w", key, err)
		}
	}

	return out, nil
}
