package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/models"
	"github.com/vibedit/vibedit-orders-service/internal/pricing"
)

type quoteResponse struct {
	ServiceType         string `json:"service_type"`
	ServiceCoefficient  string `json:"service_coefficient"`
	WordCount           int    `json:"word_count"`
	TierMin             int    `json:"tier_min"`
	TierMax             int    `json:"tier_max,omitempty"`
	DeliveryTimeLabel   string `json:"delivery_time_label"`
	DeliveryCoefficient string `json:"delivery_coefficient"`
	DeliveryFallback    bool   `json:"delivery_fallback"`
	BasePrice           string `json:"base_price"`
	PromotionCode       string `json:"promotion_code,omitempty"`
	DiscountPercent     int    `json:"discount_percent"`
	PromotionApplied    bool   `json:"promotion_applied"`
	Price               string `json:"price"`
}

func newQuoteResponse(b pricing.Breakdown) quoteResponse {
	return quoteResponse{
		ServiceType:         b.ServiceType,
		ServiceCoefficient:  b.ServiceCoefficient.StringFixed(2),
		WordCount:           b.WordCount,
		TierMin:             b.TierMin,
		TierMax:             b.TierMax,
		DeliveryTimeLabel:   b.DeliveryTimeLabel,
		DeliveryCoefficient: b.DeliveryCoefficient.StringFixed(4),
		DeliveryFallback:    b.DeliveryFallback,
		BasePrice:           b.BasePrice.StringFixed(2),
		PromotionCode:       b.PromotionCode,
		DiscountPercent:     b.DiscountPercent,
		PromotionApplied:    b.PromotionApplied,
		Price:               b.FinalPrice.StringFixed(2),
	}
}

// CreateQuote handles POST /api/v1/quotes
func (h *Handlers) CreateQuote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Failed to bind quote request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	breakdown := h.orderService.Quote(c.Request.Context(), &req)
	c.JSON(http.StatusOK, newQuoteResponse(breakdown))
}

type deliveryOption struct {
	Label string `json:"label"`
	Hours int    `json:"hours"`
}

// PricingOptions handles GET /api/v1/pricing/options
func (h *Handlers) PricingOptions(c *gin.Context) {
	labels := pricing.DeliveryLabels()
	options := make([]deliveryOption, 0, len(labels))
	for _, label := range labels {
		options = append(options, deliveryOption{Label: label, Hours: pricing.LabelToHours(label)})
	}

	c.JSON(http.StatusOK, gin.H{
		"service_types":    pricing.ServiceTypes(),
		"delivery_options": options,
		"english_variants": []models.EnglishVariant{
			models.EnglishVariantNone,
			models.EnglishVariantAmerican,
			models.EnglishVariantBritish,
		},
	})
}
