package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vibedit/vibedit-orders-service/internal/errors"
	"github.com/vibedit/vibedit-orders-service/internal/models"
	"github.com/vibedit/vibedit-orders-service/internal/pricing"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	maxListLimit         = 100
	defaultListLimit     = 20
)

// ValidateCreateOrderRequest validates an order creation request. The
// price calculator accepts anything; this is where bad input is rejected.
// Unknown promotion codes are not an error and simply earn no discount.
func ValidateCreateOrderRequest(req *models.CreateOrderRequest) error {
	if err := validateTitle(req.ProjectTitle); err != nil {
		return err
	}

	if req.WordCount <= 0 {
		return errors.NewValidationError("word_count", "word count must be greater than zero")
	}

	if !pricing.IsKnownServiceType(req.ServiceType) {
		return errors.NewValidationError("service_type", "unknown service type").
			WithDetail("allowed", strings.Join(pricing.ServiceTypes(), ", "))
	}

	if !pricing.IsKnownDeliveryLabel(req.DeliveryTimeLabel) {
		return errors.NewValidationError("delivery_time_label", "unknown delivery time").
			WithDetail("allowed", strings.Join(pricing.DeliveryLabels(), ", "))
	}

	if _, ok := models.ParseEnglishVariant(req.EnglishVariant); !ok {
		return errors.NewValidationError("english_variant", "english variant must be N/A, American or British")
	}

	if utf8.RuneCountInString(req.ProjectDescription) > maxDescriptionLength {
		return errors.NewValidationError("project_description",
			fmt.Sprintf("project description too long (max %d characters)", maxDescriptionLength))
	}

	return nil
}

// ValidateUpdateOrderRequest validates a descriptive update.
func ValidateUpdateOrderRequest(req *models.UpdateOrderRequest) error {
	if req.IsEmpty() {
		return errors.NewValidationError("body", "no fields to update")
	}

	if req.ProjectTitle != nil {
		if err := validateTitle(*req.ProjectTitle); err != nil {
			return err
		}
	}

	if req.EnglishVariant != nil {
		if _, ok := models.ParseEnglishVariant(*req.EnglishVariant); !ok {
			return errors.NewValidationError("english_variant", "english variant must be N/A, American or British")
		}
	}

	if req.ProjectDescription != nil && utf8.RuneCountInString(*req.ProjectDescription) > maxDescriptionLength {
		return errors.NewValidationError("project_description",
			fmt.Sprintf("project description too long (max %d characters)", maxDescriptionLength))
	}

	return nil
}

// ValidateOrderListFilter validates a list filter and applies the default
// and maximum page size.
func ValidateOrderListFilter(filter *models.OrderListFilter) error {
	if filter.Limit < 0 {
		return errors.NewValidationError("limit", "limit cannot be negative")
	}

	if filter.Offset < 0 {
		return errors.NewValidationError("offset", "offset cannot be negative")
	}

	if filter.Limit == 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	filter.Search = strings.TrimSpace(filter.Search)

	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.NewValidationError("project_title", "project title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return errors.NewValidationError("project_title",
			fmt.Sprintf("project title too long (max %d characters)", maxTitleLength))
	}
	return nil
}
