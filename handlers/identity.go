// ABOUTME: Identity MCP tool handlers
// ABOUTME: Implements compare_identities and add_viewer tools
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
)

type IdentityHandlers struct {
	db *sql.DB
}

func NewIdentityHandlers(database *sql.DB) *IdentityHandlers {
	return &IdentityHandlers{db: database}
}

type CompareIdentitiesInput struct {
	ViewerID string `json:"viewer_id,omitempty" jsonschema:"Stored viewer ID to compare (takes precedence over viewer)"`
	Viewer   any    `json:"viewer,omitempty" jsonschema:"Viewer profile JSON as returned by the API"`
	Record   any    `json:"record" jsonschema:"Participant, invitee, host or user record to compare against (required)"`
}

type CompareIdentitiesOutput struct {
	Match    bool                `json:"match"`
	Viewer   IdentityOutput      `json:"viewer"`
	Record   IdentityOutput      `json:"record"`
	SharedBy map[string][]string `json:"shared_by"`
}

func (h *IdentityHandlers) CompareIdentities(_ context.Context, request *mcp.CallToolRequest, input CompareIdentitiesInput) (*mcp.CallToolResult, CompareIdentitiesOutput, error) {
	if input.Record == nil {
		return nil, CompareIdentitiesOutput{}, fmt.Errorf("record is required")
	}

	viewer, err := resolveIdentity(h.db, input.ViewerID, input.Viewer)
	if err != nil {
		return nil, CompareIdentitiesOutput{}, fmt.Errorf("failed to resolve viewer: %w", err)
	}

	record, err := toRecord(input.Record)
	if err != nil {
		return nil, CompareIdentitiesOutput{}, err
	}
	recordIDs := identity.Collect(record)

	shared := make(map[string][]string)
	for kind, values := range identity.Shared(viewer, recordIDs) {
		shared[string(kind)] = values
	}

	return nil, CompareIdentitiesOutput{
		Match:    identity.Overlaps(viewer, recordIDs),
		Viewer:   identityToOutput(viewer),
		Record:   identityToOutput(recordIDs),
		SharedBy: shared,
	}, nil
}

type AddViewerInput struct {
	Name    string `json:"name" jsonschema:"Display name for the viewer (required)"`
	Profile any    `json:"profile,omitempty" jsonschema:"Viewer profile JSON as returned by the API"`
}

type ViewerOutput struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Identity  IdentityOutput `json:"identity"`
	CreatedAt string         `json:"created_at"`
}

func (h *IdentityHandlers) AddViewer(_ context.Context, request *mcp.CallToolRequest, input AddViewerInput) (*mcp.CallToolResult, ViewerOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ViewerOutput{}, fmt.Errorf("name is required")
	}

	profile := "{}"
	if input.Profile != nil {
		data, err := json.Marshal(input.Profile)
		if err != nil {
			return nil, ViewerOutput{}, fmt.Errorf("failed to encode profile: %w", err)
		}
		profile = string(data)
	}

	viewer := &models.Viewer{Name: input.Name, Profile: profile}
	if err := db.CreateViewer(h.db, viewer); err != nil {
		return nil, ViewerOutput{}, err
	}

	return nil, viewerToOutput(viewer), nil
}

func viewerToOutput(v *models.Viewer) ViewerOutput {
	return ViewerOutput{
		ID:        v.ID.String(),
		Name:      v.Name,
		Identity:  identityToOutput(db.ViewerIdentity(v)),
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
}
