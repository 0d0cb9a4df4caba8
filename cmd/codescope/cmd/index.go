package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/index"
	"github.com/codescope/codescope/internal/lang"
	"github.com/codescope/codescope/internal/scanner"
)

// newIndexCmd creates the index command.
func newIndexCmd() *cobra.Command {
	var (
		full         bool
		includeTests bool
		timeout      time.Duration
		maxFileSize  int64
		exclude      []string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or update the repository symbol index",
		Long: `Scan the repository, parse changed files, and persist their symbols and
imports. Runs are incremental by default: unchanged files are skipped
based on their stored modification time.`,
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
				Incremental:     !full,
				MaxFileSize:     cfg.Index.MaxFileSize,
				ExcludePatterns: append(cfg.Paths.Exclude, exclude...),
				IncludeTests:    cfg.Index.IncludeTests || includeTests,
				Timeout:         cfg.Index.Timeout.Std(),
			}
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = timeout
			}
			if cmd.Flags().Changed("max-file-size") {
				opts.MaxFileSize = maxFileSize
			}

			res, err := runIndex(cmd, root, cfg, opts)
			if err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("index run incomplete")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Reindex every file instead of only changes")
	cmd.Flags().BoolVar(&includeTests, "include-tests", false, "Index test files too")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the run after this duration (0 = config default)")
	cmd.Flags().Int64Var(&maxFileSize, "max-file-size", 0, "Largest file to index in bytes (0 = config default)")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Extra exclusion pattern (repeatable)")

	return cmd
}

// runIndex wires the indexer and executes one run, rendering the summary.
// Shared with the watch command.
func runIndex(cmd *cobra.Command, root string, cfg *config.Config, opts index.Options) (*index.Result, error) {
	st, err := openStore(root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	parsers, err := lang.NewCache(cfg.Index.ParserCacheSize, slog.Default())
	if err != nil {
		return nil, err
	}
	defer parsers.Close()

	render := newRenderer(cmd)
	opts.OnProgress = render.Progress

	ix := index.New(index.Deps{
		Store:   st,
		Scanner: scanner.New(),
		Parsers: parsers,
		Logger:  slog.Default(),
	})

	res, err := ix.Run(cmd.Context(), opts)
	if res != nil {
		// A faulted run still carries the counts completed before the
		// fault; show them before surfacing the error.
		render.Summary(res)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
