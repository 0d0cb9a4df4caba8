package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/store"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the repository's index status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			st, err := openStore(root)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			repo, err := st.GetRepo(cmd.Context(), root)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("repository not indexed yet; run 'codescope index'")
			}
			if err != nil {
				return err
			}

			status, err := st.GetStatus(cmd.Context(), repo.ID)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}
			newRenderer(cmd).Status(status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")
	return cmd
}
