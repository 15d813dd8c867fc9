// ABOUTME: MCP server subcommand
// ABOUTME: Registers courtside tools and resources and serves them over stdio
package cli

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/courtside/handlers"
)

// NewMCPServer builds the MCP server with every courtside tool and resource.
func NewMCPServer(env *Env, version string) *mcp.Server {
	identityHandlers := handlers.NewIdentityHandlers(env.DB)
	matchHandlers := handlers.NewMatchHandlers(env.DB, env.Builder)
	rosterHandlers := handlers.NewRosterHandlers(env.DB)
	resourceHandlers := handlers.NewResourceHandlers(env.DB)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "courtside",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_matches",
		Description: "Classify matches as hosted, joined or available for a viewer and count open spots; private matches the viewer cannot see are dropped",
	}, matchHandlers.ClassifyMatches)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "viewer_feed",
		Description: "Build the match feed of a stored viewer from every stored match",
	}, matchHandlers.ViewerFeed)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_matches",
		Description: "Store raw match payloads, replacing earlier copies with the same match id",
	}, matchHandlers.ImportMatches)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_identities",
		Description: "Check whether a viewer and a record refer to the same person by id, email or phone",
	}, identityHandlers.CompareIdentities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_viewer",
		Description: "Store a viewer profile used to build feeds",
	}, identityHandlers.AddViewer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_roster",
		Description: "Count raw and deduplicated participants, invitees and unique occupants of a match",
	}, rosterHandlers.SummarizeRoster)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "prune_member",
		Description: "Remove a departing member's participant and invitee entries from a match",
	}, rosterHandlers.PruneMember)

	for _, resource := range resourceHandlers.Resources() {
		server.AddResource(resource, resourceHandlers.ReadResource)
	}
	for _, template := range resourceHandlers.ResourceTemplates() {
		server.AddResourceTemplate(template, resourceHandlers.ReadResource)
	}

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(ctx context.Context, env *Env, version string) error {
	env.Log.Info().Str("version", version).Msg("starting courtside MCP server")

	server := NewMCPServer(env, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
