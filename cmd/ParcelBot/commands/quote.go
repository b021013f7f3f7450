package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/natindo/ParcelBot/internal/models"
	"github.com/natindo/ParcelBot/internal/pricing"
)

func quoteCmd() *cobra.Command {
	var size, weight, method string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the price of a parcel",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := pricing.ComputeBasePrice(models.SizeClass(size), models.WeightRange(weight))
			extra := 0
			if method != "" {
				m, ok := pricing.DeliveryMethodByID(method)
				if !ok {
					return fmt.Errorf("unknown delivery method %q", method)
				}
				extra = m.AdditionalCost
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Base price: %s\nExtra fees: %s\nTotal: %s\n",
				pricing.FormatPrice(base),
				pricing.FormatPrice(extra),
				pricing.FormatPrice(pricing.ComputeTotal(base, extra)))
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "small", "parcel size (small, medium, large)")
	cmd.Flags().StringVar(&weight, "weight", "0-1kg", "weight range (0-1kg, 1-5kg, 5-10kg, 10-25kg)")
	cmd.Flags().StringVar(&method, "method", "", "delivery method (self, pickup)")
	return cmd
}
