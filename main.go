// ABOUTME: Entry point for the kindling networking CRM
// ABOUTME: Routes to CLI commands, the dashboard TUI, and the MCP server
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/kindling-crm/kindling/cache"
	"github.com/kindling-crm/kindling/cli"
	"github.com/kindling-crm/kindling/config"
	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/db"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/kindling/kindling.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("kindling version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg := config.Load()
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger := newLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		fmt.Printf("✓ Database initialized: %s\n", cfg.DBPath)
		os.Exit(0)
	}

	opts := []dashboard.Option{dashboard.WithLogger(logger)}
	snapshots, err := cache.OpenSnapshotStore(cfg.CacheDir, logger)
	if err != nil {
		// The snapshot store is a nicety; the dashboard works without it.
		logger.Warn("snapshot store unavailable", zap.Error(err))
	} else {
		opts = append(opts, dashboard.WithSnapshotStore(snapshots))
	}

	svc := dashboard.NewService(database, opts...)
	defer svc.Close()

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		if err := cli.MCPCommand(svc); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	// Contact commands
	case "add-contact":
		run(cli.AddContactCommand, svc, commandArgs)
	case "list-contacts":
		run(cli.ListContactsCommand, svc, commandArgs)
	case "show-contact":
		run(cli.ShowContactCommand, svc, commandArgs)
	case "update-contact":
		run(cli.UpdateContactCommand, svc, commandArgs)
	case "archive-contact":
		run(cli.ArchiveContactCommand, svc, commandArgs)
	case "restore-contact":
		run(cli.RestoreContactCommand, svc, commandArgs)
	case "delete-contact":
		run(cli.DeleteContactCommand, svc, commandArgs)

	// Company commands
	case "add-company":
		run(cli.AddCompanyCommand, svc, commandArgs)
	case "list-companies":
		run(cli.ListCompaniesCommand, svc, commandArgs)
	case "update-company":
		run(cli.UpdateCompanyCommand, svc, commandArgs)
	case "archive-company":
		run(cli.ArchiveCompanyCommand, svc, commandArgs)
	case "restore-company":
		run(cli.RestoreCompanyCommand, svc, commandArgs)
	case "delete-company":
		run(cli.DeleteCompanyCommand, svc, commandArgs)
	case "backfill-company-ids":
		run(cli.BackfillCommand, svc, commandArgs)

	// Interaction commands
	case "log", "log-interaction":
		run(cli.LogInteractionCommand, svc, commandArgs)
	case "list-interactions":
		run(cli.ListInteractionsCommand, svc, commandArgs)

	// Follow-up commands
	case "add-followup":
		run(cli.AddFollowUpCommand, svc, commandArgs)
	case "list-followups":
		run(cli.ListFollowUpsCommand, svc, commandArgs)
	case "complete-followup":
		run(cli.CompleteFollowUpCommand, svc, commandArgs)

	// Daily task commands
	case "today":
		run(cli.TodayCommand, svc, commandArgs)
	case "generate-tasks":
		run(cli.GenerateTasksCommand, svc, commandArgs)
	case "complete-task":
		run(cli.CompleteTaskCommand, svc, commandArgs)

	case "dashboard":
		run(cli.DashboardCommand, svc, commandArgs)

	case "viz":
		if len(commandArgs) == 0 || commandArgs[0] != "heatmap" {
			fmt.Println("Error: viz requires a subcommand (heatmap)")
			printUsage()
			os.Exit(1)
		}
		run(cli.VizHeatmapCommand, svc, commandArgs[1:])

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(cmd func(*dashboard.Service, []string) error, svc *dashboard.Service, args []string) {
	if err := cmd(svc, args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		// CLI output belongs to the commands; keep the logger quiet.
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

const usageText = `kindling v%s - Personal networking CRM

USAGE:
  kindling [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/kindling/kindling.db)
  --init                 Initialize database and exit

CONTACTS:
  kindling add-contact      Add a new contact
    --name <name>             Contact name (required)
    --email <email>           Email address
    --company <company>       Company name (created if missing)
    --role <role>             Role or title
    --type <type>             Contact type (connector, trailblazer, reliable_recruiter)
    --linkedin <url>          LinkedIn profile URL
    --notes <notes>           Notes about contact

  kindling list-contacts    List contacts
    --query <text>            Search by name or email
    --archived                Show archived contacts

  kindling show-contact <id>      Show contact details and recent interactions
  kindling update-contact [flags] <id>  Update a contact (flags before the ID)
  kindling archive-contact <id|name>    Archive a contact
  kindling restore-contact <id|name>    Restore an archived contact
  kindling delete-contact <id|name>     Delete a contact permanently

COMPANIES:
  kindling add-company      Add a new company
    --name <name>             Company name (required)
    --priority <n>            Target priority (higher is hotter)
    --notes <notes>           Notes about company

  kindling list-companies   List companies
  kindling update-company [flags] <id|name>   Update a company
  kindling archive-company <id|name>          Archive a company
  kindling restore-company <id|name>          Restore a company
  kindling delete-company <id|name>           Delete a company
  kindling backfill-company-ids               Link contacts to companies by name

INTERACTIONS:
  kindling log [flags] <contact>  Log an interaction (contact is an ID or name)
    --type <type>             email, call, meeting, message, event (default: email)
    --date <date>             Interaction date (default: today)
    --notes <notes>           What happened

  kindling list-interactions      List interactions
    --contact <id|name>             Filter by contact

FOLLOW-UPS:
  kindling add-followup [flags] <contact>  Schedule a follow-up
    --due <date>              Due date (default: today)
    --note <note>             What to follow up about

  kindling list-followups         List pending follow-ups
    --due-today                     Only follow-ups due today
    --all                           Include completed follow-ups

  kindling complete-followup <id>  Mark a follow-up done

DAILY PRACTICE:
  kindling today            Show today's task list
  kindling generate-tasks   Generate today's tasks from prioritized actions
  kindling complete-task <id>     Complete a task (ID prefix is enough)

DASHBOARD:
  kindling dashboard        Print the relationship dashboard
    --tui                     Open the interactive terminal dashboard

VIZ:
  kindling viz heatmap      Generate a network warmth heatmap (graphviz)
    --output <file>           Output file (default: stdout)

MCP SERVER:
  kindling mcp              Start MCP server (stdio transport)

EXAMPLES:
  # Add a connector you met at a conference
  kindling add-contact --name "Dana Ibarra" --company "Globex" --type connector

  # Log a coffee chat
  kindling log --type meeting --notes "Coffee, intro to platform team" "Dana Ibarra"

  # Work the daily practice
  kindling generate-tasks
  kindling today
  kindling complete-task 4f2a

`

func printUsage() {
	fmt.Printf(usageText, version)
}
