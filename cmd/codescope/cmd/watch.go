package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/index"
	"github.com/codescope/codescope/internal/watcher"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the index current as files change",
		Long: `Run an initial incremental index, then watch the repository and rerun
incrementally whenever files change. Stops on Ctrl-C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			opts := index.Options{
				RepoRoot:        root,
				Incremental:     true,
				MaxFileSize:     cfg.Index.MaxFileSize,
				ExcludePatterns: cfg.Paths.Exclude,
				IncludeTests:    cfg.Index.IncludeTests,
				Timeout:         cfg.Index.Timeout.Std(),
			}
			if _, err := runIndex(cmd, root, cfg, opts); err != nil {
				return err
			}

			w, err := watcher.New(root, cfg.Index.WatchDebounce.Std(), slog.Default())
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "watching for changes...")
			err = w.Run(ctx, func(paths []string) {
				slog.Info("changes detected", "files", len(paths))
				if _, err := runIndex(cmd, root, cfg, opts); err != nil {
					slog.Error("reindex failed", "error", err)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	return cmd
}
