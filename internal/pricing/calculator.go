// Package pricing computes the price of document editing orders.
//
// All amounts are exact decimals. Every public function is a pure lookup
// over immutable package tables and is safe for concurrent use. Bad input
// never produces an error: unknown service types, delivery labels and
// promotion codes degrade to documented defaults.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

const centPlaces = 2

var hundred = decimal.NewFromInt(100)

// BasePrice returns the undiscounted price, rounded up to the cent.
func BasePrice(serviceType, deliveryTimeLabel string, wordCount int) decimal.Decimal {
	if wordCount <= 0 {
		return decimal.Zero
	}
	return roundUp(rawBasePrice(serviceType, deliveryTimeLabel, wordCount))
}

// FinalPrice applies a promotion code to an already rounded base price.
// Blank and unknown codes return base unchanged.
func FinalPrice(base decimal.Decimal, promotionCode string) decimal.Decimal {
	pct, ok := DiscountPercent(promotionCode)
	if !ok {
		return base
	}
	rate := decimal.NewFromInt(int64(pct)).Div(hundred)
	return roundUp(base.Mul(decimal.NewFromInt(1).Sub(rate)))
}

// CalculatePrice is the order price: FinalPrice(BasePrice(...), promotionCode).
func CalculatePrice(serviceType, deliveryTimeLabel string, wordCount int, promotionCode string) decimal.Decimal {
	return FinalPrice(BasePrice(serviceType, deliveryTimeLabel, wordCount), promotionCode)
}

// ServiceCoefficient returns the multiplier for a service type. Anything
// other than editing or proofreading is billed as editing.
func ServiceCoefficient(serviceType string) decimal.Decimal {
	if c, ok := serviceCoefficients[normalize(serviceType)]; ok {
		return c
	}
	return editingCoefficient
}

// LookupDeliveryCoefficient returns the per-word rate for the tier holding
// wordCount. The second result is false when the label was not found and
// the fallback rate was used.
func LookupDeliveryCoefficient(wordCount int, deliveryTimeLabel string) (decimal.Decimal, bool) {
	if c, ok := TierFor(wordCount).Rates[normalize(deliveryTimeLabel)]; ok {
		return c, true
	}
	return fallbackDeliveryCoefficient, false
}

// DiscountPercent looks up a promotion code, ignoring case and surrounding
// whitespace.
func DiscountPercent(promotionCode string) (int, bool) {
	code := strings.ToUpper(strings.TrimSpace(promotionCode))
	if code == "" {
		return 0, false
	}
	pct, ok := promotionDiscounts[code]
	return pct, ok
}

// TierFor returns the word-count tier for wordCount. Counts below zero map
// to the first tier.
func TierFor(wordCount int) Tier {
	for _, t := range tiers {
		if t.Contains(wordCount) {
			return t
		}
	}
	if wordCount < 0 {
		return tiers[0]
	}
	return tiers[len(tiers)-1]
}

func rawBasePrice(serviceType, deliveryTimeLabel string, wordCount int) decimal.Decimal {
	delivery, _ := LookupDeliveryCoefficient(wordCount, deliveryTimeLabel)
	return decimal.NewFromInt(int64(wordCount)).
		Mul(ServiceCoefficient(serviceType)).
		Mul(delivery)
}

func roundUp(d decimal.Decimal) decimal.Decimal {
	return d.RoundCeil(centPlaces)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
