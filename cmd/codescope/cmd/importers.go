package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/store"
)

// newImportersCmd creates the importers command.
func newImportersCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "importers <path>",
		Short: "List files importing a module path",
		Long: `List every file whose imports reference the given module specifier,
exactly as written in source ("fmt", "react", "./utils").`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			matches, err := st.FindImporters(cmd.Context(), repo.ID, args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}
			newRenderer(cmd).Importers(args[0], matches)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output matches as JSON")
	return cmd
}
