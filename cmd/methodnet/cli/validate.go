package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ackbas/methodnet/internal/catalog"
)

func newValidateCmd() *cobra.Command {
	var catalogueFile string
	var legacy bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a catalogue and report whether it parses cleanly",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(catalogueFile)
			if err != nil {
				return fmt.Errorf("read catalogue: %w", err)
			}

			var g, loadErr = catalog.Load(data)
			if legacy {
				g, loadErr = catalog.LoadLegacy(string(data))
			}
			if loadErr != nil {
				return loadErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d types, %d methods\n", len(g.Types), len(g.Methods))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogueFile, "catalogue", "", "Path to the catalogue document (required)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Parse the legacy type/method DSL instead of YAML")
	cmd.MarkFlagRequired("catalogue")

	return cmd
}
