package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Breakdown explains how a price was reached.
type Breakdown struct {
	ServiceType         string          `json:"service_type"`
	ServiceCoefficient  decimal.Decimal `json:"service_coefficient"`
	WordCount           int             `json:"word_count"`
	TierMin             int             `json:"tier_min"`
	TierMax             int             `json:"tier_max,omitempty"`
	DeliveryTimeLabel   string          `json:"delivery_time_label"`
	DeliveryCoefficient decimal.Decimal `json:"delivery_coefficient"`
	DeliveryFallback    bool            `json:"delivery_fallback"`
	BasePrice           decimal.Decimal `json:"base_price"`
	PromotionCode       string          `json:"promotion_code,omitempty"`
	DiscountPercent     int             `json:"discount_percent"`
	PromotionApplied    bool            `json:"promotion_applied"`
	FinalPrice          decimal.Decimal `json:"final_price"`
}

// Quote prices an order and reports each factor used. FinalPrice always
// equals CalculatePrice for the same arguments.
func Quote(serviceType, deliveryTimeLabel string, wordCount int, promotionCode string) Breakdown {
	tier := TierFor(wordCount)
	delivery, found := LookupDeliveryCoefficient(wordCount, deliveryTimeLabel)
	base := BasePrice(serviceType, deliveryTimeLabel, wordCount)
	pct, applied := DiscountPercent(promotionCode)

	return Breakdown{
		ServiceType:         CanonicalServiceType(serviceType),
		ServiceCoefficient:  ServiceCoefficient(serviceType),
		WordCount:           wordCount,
		TierMin:             tier.Min,
		TierMax:             tier.Max,
		DeliveryTimeLabel:   normalize(deliveryTimeLabel),
		DeliveryCoefficient: delivery,
		DeliveryFallback:    !found,
		BasePrice:           base,
		PromotionCode:       strings.ToUpper(strings.TrimSpace(promotionCode)),
		DiscountPercent:     pct,
		PromotionApplied:    applied,
		FinalPrice:          FinalPrice(base, promotionCode),
	}
}

// CanonicalServiceType maps a free-form service type to the name it is
// billed under.
func CanonicalServiceType(serviceType string) string {
	switch normalize(serviceType) {
	case "proofreading", "proof":
		return ServiceProofreading
	default:
		return ServiceEditing
	}
}
