// ABOUTME: MCP resource handlers for exposing stored courtside data
// ABOUTME: Provides read-only access to viewers and match snapshots via courtside:// URIs
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/roster"
)

const resourceScheme = "courtside://"

type ResourceHandlers struct {
	db *sql.DB
}

func NewResourceHandlers(database *sql.DB) *ResourceHandlers {
	return &ResourceHandlers{db: database}
}

// Resources lists the fixed resources served by ReadResource.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{
			Name:        "viewer_list",
			Title:       "Viewers",
			Description: "Stored viewer profiles with their collected identifiers",
			MIMEType:    "application/json",
			URI:         resourceScheme + "viewers",
		},
		{
			Name:        "match_list",
			Title:       "Matches",
			Description: "Stored match snapshots with roster summaries",
			MIMEType:    "application/json",
			URI:         resourceScheme + "matches",
		},
	}
}

// ResourceTemplates lists the parameterized resources served by ReadResource.
func (h *ResourceHandlers) ResourceTemplates() []*mcp.ResourceTemplate {
	return []*mcp.ResourceTemplate{
		{
			Name:        "viewer",
			Title:       "Viewer",
			Description: "One stored viewer. URI format: courtside://viewers/{viewer_id}",
			MIMEType:    "application/json",
			URITemplate: resourceScheme + "viewers/{viewer_id}",
		},
		{
			Name:        "match",
			Title:       "Match",
			Description: "Raw payload of one stored match. URI format: courtside://matches/{match_key}",
			MIMEType:    "application/json",
			URITemplate: resourceScheme + "matches/{match_key}",
		},
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, resourceScheme), "/", 2)

	switch parts[0] {
	case "viewers":
		if len(parts) == 1 || parts[1] == "" {
			return h.readAllViewers(uri)
		}
		return h.readViewer(uri, parts[1])

	case "matches":
		if len(parts) == 1 || parts[1] == "" {
			return h.readAllMatches(uri)
		}
		return h.readMatch(uri, parts[1])

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func (h *ResourceHandlers) readAllViewers(uri string) (*mcp.ReadResourceResult, error) {
	viewers, err := db.FindViewers(h.db, "", 1000)
	if err != nil {
		return nil, err
	}

	out := make([]ViewerOutput, len(viewers))
	for i := range viewers {
		out[i] = viewerToOutput(&viewers[i])
	}
	return jsonResource(uri, out)
}

func (h *ResourceHandlers) readViewer(uri, idStr string) (*mcp.ReadResourceResult, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid viewer ID: %w", err)
	}

	viewer, err := db.GetViewer(h.db, id)
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, viewerToOutput(viewer))
}

type matchListEntry struct {
	MatchKey  string `json:"match_key"`
	FetchedAt string `json:"fetched_at"`
	Roster    any    `json:"roster"`
}

func (h *ResourceHandlers) readAllMatches(uri string) (*mcp.ReadResourceResult, error) {
	snapshots, err := db.ListMatchSnapshots(h.db)
	if err != nil {
		return nil, err
	}

	records := db.MatchPayloads(snapshots)
	out := make([]matchListEntry, len(snapshots))
	for i, s := range snapshots {
		out[i] = matchListEntry{
			MatchKey:  s.MatchKey,
			FetchedAt: s.FetchedAt.Format(time.RFC3339),
			Roster:    roster.Summarize(records[i]),
		}
	}
	return jsonResource(uri, out)
}

func (h *ResourceHandlers) readMatch(uri, key string) (*mcp.ReadResourceResult, error) {
	snapshot, err := db.GetMatchSnapshot(h.db, key)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     snapshot.Payload,
		},
	}}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
