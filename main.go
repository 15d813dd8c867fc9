// ABOUTME: Entry point for the courtside CLI, TUI and MCP server
// ABOUTME: Loads configuration, opens the store and routes to the requested command
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/harperreed/courtside/cli"
	"github.com/harperreed/courtside/config"
	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/feed"
	"github.com/harperreed/courtside/logger"
	"github.com/harperreed/courtside/tui"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/courtside/courtside.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("courtside version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg = cfg.WithDBPath(*dbPath)
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	args := flag.Args()
	if len(args) == 0 && !*initOnly {
		printUsage()
		os.Exit(0)
	}

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to open database")
	}
	defer database.Close()

	log.Debug().Str("db_path", cfg.DBPath).Msg("database ready")

	if *initOnly {
		log.Info().Str("db_path", cfg.DBPath).Msg("database initialized")
		return
	}

	builder := &feed.Builder{
		PlayerLimit:     cfg.PlayerLimit,
		LowRosterWindow: cfg.LowRosterWindow,
	}
	env := cli.NewEnv(database, builder, log)

	if err := run(env, args); err != nil {
		if cli.IsUsageError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			printUsage()
			os.Exit(2)
		}
		log.Error().Err(err).Str("command", args[0]).Msg("command failed")
		database.Close()
		os.Exit(1)
	}
}

func run(env *cli.Env, args []string) error {
	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.MCPCommand(ctx, env, version)

	case "viewer":
		return cli.ViewerCommand(env, commandArgs)

	case "matches":
		return cli.MatchesCommand(env, commandArgs)

	case "feed":
		return cli.FeedCommand(env, commandArgs)

	case "roster":
		return cli.RosterCommand(env, commandArgs)

	case "leave":
		return cli.LeaveCommand(env, commandArgs)

	case "whois":
		return cli.WhoisCommand(env, commandArgs)

	case "tui":
		return runTUI(env, commandArgs)

	case "help":
		printUsage()
		return nil

	default:
		return cli.NewUsageError("unknown command: %s", command)
	}
}

func runTUI(env *cli.Env, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	ref := fs.String("viewer", "", "Viewer ID, ID prefix or name (required)")
	if err := fs.Parse(args); err != nil {
		return cli.NewUsageError("%v", err)
	}

	viewer, err := cli.ResolveViewer(env.DB, *ref)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; keep log lines out of it.
	env.Log = env.Log.Level(zerolog.Disabled)
	return tui.Run(env.DB, env.Builder, viewer)
}

func printUsage() {
	fmt.Printf(`courtside v%s - tennis match feed and roster toolkit

USAGE:
  courtside [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/courtside/courtside.db)
  --init                 Initialize database and exit

ENVIRONMENT (also read from .env):
  COURTSIDE_DB_PATH              Database path
  COURTSIDE_LOG_LEVEL            debug, info, warn, error (default: info)
  COURTSIDE_LOG_FORMAT           console or json (default: console)
  COURTSIDE_PLAYER_LIMIT         Player limit when a match declares none (default: 4)
  COURTSIDE_LOW_ROSTER_WINDOW    How soon before start an unfilled hosted match is flagged (default: 24h)

COMMANDS:
  courtside viewer add          Store a viewer profile
    --name <name>                 Viewer name (required)
    --profile <json>              Profile JSON as returned by the API
    --file <path>                 Read the profile from a file (- for stdin)

  courtside viewer list         List viewers and their identifiers
    --query <text>                Search by name
    --limit <n>                   Max results (default: 50)

  courtside viewer show         Show one viewer
    --viewer <ref>                Viewer ID, ID prefix or name

  courtside viewer update       Replace a viewer's profile
    --viewer <ref>                Viewer ID, ID prefix or name
    --profile <json> | --file <path>

  courtside matches import      Store matches from an API response
    --file <path>                 Match feed JSON (default: - for stdin)

  courtside matches list        List stored matches with roster counts
  courtside matches delete      Delete a stored match
    --match <key>                 Match key

  courtside feed                Show a viewer's match feed
    --viewer <ref>                Viewer ID, ID prefix or name (required)
    --type <type>                 Only hosted, joined or available
    --json                        Print view-models as JSON

  courtside roster              Summarize a stored match roster
    --match <key>                 Match key (required)
    --json                        Print the summary as JSON

  courtside leave               Remove a viewer from a stored match roster
    --match <key>                 Match key (required)
    --viewer <ref>                Viewer ID, ID prefix or name (required)

  courtside whois               Compare a viewer with an API record
    --viewer <ref>                Viewer ID, ID prefix or name (required)
    --record <json> | --file <path>

  courtside tui                 Interactive feed browser
    --viewer <ref>                Viewer ID, ID prefix or name (required)

  courtside mcp                 Start MCP server on stdio

EXAMPLES:
  courtside viewer add --name "Sam" --file me.json
  courtside matches import --file matches.json
  courtside feed --viewer Sam
  courtside --db-path /tmp/test.db roster --match 1234
`, version)
}
