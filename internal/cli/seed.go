package cli

import (
	"fmt"

	"shopyz-be/internal/product"

	"github.com/spf13/cobra"
)

func newSeedCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog into the products collection",
		Long: `Write the built-in demo products under their fixed IDs. Existing products
with other IDs are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := open()
			if err != nil {
				return err
			}
			defer backend.Close()

			samples := product.SampleProducts()
			if err := product.NewRepository(backend.DB).Seed(cmd.Context(), samples); err != nil {
				return fmt.Errorf("failed to load demo data: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Demo data loaded: %d products\n", len(samples))
			return nil
		},
	}
}
