package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"shopyz-be/internal/order"
	"shopyz-be/internal/pricing"

	"github.com/spf13/cobra"
)

// listOrders reads the ledger once, newest first like the admin console shows it.
func listOrders(ctx context.Context, backend *Backend) ([]order.Order, error) {
	orders, err := order.NewRepository(backend.DB).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	slices.Reverse(orders)
	return orders, nil
}

func newExportOrdersCommand(open Opener) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-orders",
		Short: "Write every order as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := open()
			if err != nil {
				return err
			}
			defer backend.Close()

			orders, err := listOrders(cmd.Context(), backend)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if err := order.WriteCSV(w, orders, backend.Location); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d orders to %s\n", len(orders), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, stdout when empty")
	return cmd
}

func newRevenueCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "revenue",
		Short: "Print the order count and delivered revenue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := open()
			if err != nil {
				return err
			}
			defer backend.Close()

			orders, err := listOrders(cmd.Context(), backend)
			if err != nil {
				return err
			}

			counts := make(map[order.Status]int)
			for _, o := range orders {
				counts[o.Status]++
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Orders:  %d\n", len(orders))
			for _, s := range []order.Status{order.StatusPending, order.StatusShipped, order.StatusDelivered, order.StatusCancelled} {
				fmt.Fprintf(w, "  %-10s %d\n", s, counts[s])
			}
			fmt.Fprintf(w, "Revenue: %s\n", pricing.FormatAmount(order.Revenue(orders)))
			return nil
		},
	}
}
