package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/pkg/version"
)

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var jsonOutput bool
	var shortOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			switch {
			case shortOutput:
				_, err := fmt.Fprintln(out, info.Version)
				return err
			case jsonOutput:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			if _, err := fmt.Fprintf(out, "codescope %s\n", info.Version); err != nil {
				return err
			}
			if info.Commit != "" {
				_, _ = fmt.Fprintf(out, "  commit: %s\n", info.Commit)
			}
			if info.Date != "" {
				_, _ = fmt.Fprintf(out, "  built:  %s\n", info.Date)
			}
			_, err := fmt.Fprintf(out, "  go:     %s (%s)\n", info.GoVersion, info.Platform)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print version info as JSON")
	cmd.Flags().BoolVar(&shortOutput, "short", false, "Print only the version number")

	return cmd
}
