package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vibedit/vibedit-orders-service/internal/pricing"
)

func quoteCmd() *cobra.Command {
	var (
		serviceType string
		delivery    string
		words       int
		promo       string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price an order without placing it",
		Long: `Price an order from the built-in rate table.

Unknown delivery times fall back to the standard one-day rate and unknown
service types are billed as editing, exactly as the API quotes them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			breakdown := pricing.Quote(serviceType, delivery, words, promo)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(breakdown)
			}
			return printBreakdown(cmd.OutOrStdout(), breakdown)
		},
	}

	cmd.Flags().StringVarP(&serviceType, "service", "s", pricing.ServiceEditing, "service type (Editing, Proofreading)")
	cmd.Flags().StringVarP(&delivery, "delivery", "d", pricing.Delivery1Day, "delivery time label")
	cmd.Flags().IntVarP(&words, "words", "w", 0, "word count")
	cmd.Flags().StringVarP(&promo, "promo", "p", "", "promotion code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the breakdown as JSON")
	_ = cmd.MarkFlagRequired("words")

	return cmd
}

func printBreakdown(w io.Writer, b pricing.Breakdown) error {
	tier := fmt.Sprintf("%d+", b.TierMin)
	if b.TierMax > 0 {
		tier = fmt.Sprintf("%d-%d", b.TierMin, b.TierMax)
	}

	delivery := b.DeliveryTimeLabel
	if b.DeliveryFallback {
		delivery += " (unknown, standard rate applied)"
	}

	promotion := "none"
	if b.PromotionApplied {
		promotion = fmt.Sprintf("%s (-%d%%)", b.PromotionCode, b.DiscountPercent)
	} else if b.PromotionCode != "" {
		promotion = b.PromotionCode + " (not recognised)"
	}

	_, err := fmt.Fprintf(w,
		"Service:     %s x%s\nWords:       %d (tier %s)\nDelivery:    %s @ %s/word\nBase price:  %s\nPromotion:   %s\nTotal:       %s\n",
		b.ServiceType, b.ServiceCoefficient.StringFixed(2),
		b.WordCount, tier,
		delivery, b.DeliveryCoefficient.StringFixed(4),
		b.BasePrice.StringFixed(2),
		promotion,
		b.FinalPrice.StringFixed(2),
	)
	return err
}
