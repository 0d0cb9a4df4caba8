// Package cmd provides the CLI commands for codescope.
package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/logging"
	"github.com/codescope/codescope/internal/store"
	"github.com/codescope/codescope/internal/ui"
	"github.com/codescope/codescope/pkg/version"
)

var (
	repoFlag   string
	debugMode  bool
	noColor    bool
	quietMode  bool
	logCleanup func()
)

// NewRootCmd creates the root command for the codescope CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codescope",
		Short: "Multi-language repository symbol indexer",
		Long: `Codescope builds a queryable symbol index over a repository: functions,
types, and import relationships across Go, TypeScript, Python, Rust, and
more, persisted in SQLite and updated incrementally.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("codescope version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&repoFlag, "repo", "r", ".", "Repository root to operate on")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress progress output")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	}

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newImportersCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupLogging routes structured logs to the repository state directory,
// mirroring to stderr in debug mode. The version command skips it so that
// running it outside a repository leaves no state directory behind.
func setupLogging(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	root, err := repoRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.FilePath = cfg.Log.File
	if logCfg.FilePath == "" {
		dir, err := config.StateDir(root)
		if err != nil {
			return err
		}
		logCfg.FilePath = filepath.Join(dir, "codescope.log")
	}
	if debugMode {
		logCfg.Level = "debug"
		logCfg.WriteToStderr = true
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	logCleanup = cleanup
	slog.SetDefault(logger)
	return nil
}

// repoRoot resolves the --repo flag to an absolute path.
func repoRoot() (string, error) {
	root, err := filepath.Abs(repoFlag)
	if err != nil {
		return "", fmt.Errorf("resolve repo path: %w", err)
	}
	return root, nil
}

// openStore opens the repository's index database.
func openStore(root string) (*store.SQLiteStore, error) {
	dbPath, err := config.DBPath(root)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

// newRenderer builds the output renderer for a command.
func newRenderer(cmd *cobra.Command) ui.Renderer {
	return ui.New(ui.Config{
		Output:  cmd.OutOrStdout(),
		NoColor: noColor,
		Quiet:   quietMode,
	})
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
