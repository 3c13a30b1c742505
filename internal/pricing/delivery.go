package pricing

const defaultDeliveryHours = 24

// LabelToHours converts a delivery time label to hours. Unknown labels
// are treated as one day.
func LabelToHours(label string) int {
	if h, ok := deliveryHours[normalize(label)]; ok {
		return h
	}
	return defaultDeliveryHours
}

// HoursToLabel is the inverse of LabelToHours. Unknown values map to "1 day".
func HoursToLabel(hours int) string {
	for label, h := range deliveryHours {
		if h == hours {
			return label
		}
	}
	return Delivery1Day
}

// DeliveryLabels returns the supported labels, fastest first.
func DeliveryLabels() []string {
	out := make([]string, len(deliveryLabels))
	copy(out, deliveryLabels)
	return out
}

// ServiceTypes returns the billable service types.
func ServiceTypes() []string {
	return []string{ServiceEditing, ServiceProofreading}
}

// PromotionCodes returns a copy of the promotion table.
func PromotionCodes() map[string]int {
	out := make(map[string]int, len(promotionDiscounts))
	for code, pct := range promotionDiscounts {
		out[code] = pct
	}
	return out
}

// IsKnownServiceType reports whether serviceType has its own coefficient
// rather than the editing default.
func IsKnownServiceType(serviceType string) bool {
	_, ok := serviceCoefficients[normalize(serviceType)]
	return ok
}

// IsKnownDeliveryLabel reports whether label appears in the coefficient table.
func IsKnownDeliveryLabel(label string) bool {
	_, ok := deliveryHours[normalize(label)]
	return ok
}
