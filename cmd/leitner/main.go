package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/hpungsan/leitner/internal/config"
	"github.com/hpungsan/leitner/internal/db"
	"github.com/hpungsan/leitner/internal/mcp"
	"github.com/hpungsan/leitner/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add": true, "list": true, "due": true, "review": true,
	"schedule": true, "stats": true, "import": true, "reanchor": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _     _____ ___ _____ _   _ _____ ____
  | |   | ____|_ _|_   _| \ | | ____|  _ \
  | |   |  _|  | |  | | |  \| |  _| | |_) |
  | |___| |___ | |  | | | |\  | |___|  _ <
  |_____|_____|___| |_| |_| \_|_____|_| \_\

  Leitner-box spaced repetition

  Usage: leitner <command> [options]
         leitner --help

  MCP server mode requires piped input.`)
}

// newLogger writes structured logs to stderr; stdout carries command output and the MCP stream.
func newLogger(cfg *config.Config) *slog.Logger {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openBackend returns the configured snapshot store and a function that releases it.
func openBackend(cfg *config.Config, baseDir string, logger *slog.Logger) (store.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.Init(baseDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Debug("using sqlite backend", "path", filepath.Join(baseDir, db.FileName))
		return db.NewBackend(database, logger), func() { database.Close() }, nil
	default:
		path := cfg.ResolveStorePath(baseDir)
		logger.Debug("using file backend", "path", path)
		return store.NewFileBackend(path, logger), func() {}, nil
	}
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before opening the store
	if isHelpOrVersion() {
		cfg := config.DefaultConfig()
		app := newCLIApp(nil, cfg, newLogger(cfg))
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, config.DirName)

	cwd, _ := os.Getwd()
	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	backend, closeBackend, err := openBackend(cfg, baseDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(backend, cfg, logger)
		err := app.Run(os.Args)
		closeBackend()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		closeBackend()
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'leitner --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	logger.Info("starting mcp server", "version", Version, "backend", cfg.Backend)
	err = mcp.Run(backend, cfg, logger, Version)
	closeBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
