package pricing

import "github.com/shopspring/decimal"

// Delivery time labels accepted by the coefficient table.
const (
	Delivery12Hours = "12 hours"
	Delivery1Day    = "1 day"
	Delivery2Days   = "2 day"
	Delivery3Days   = "3 day"
	Delivery5Days   = "5 day"
	Delivery10Days  = "10 day"
	Delivery15Days  = "15 day"
)

// Service types offered to customers.
const (
	ServiceEditing      = "Editing"
	ServiceProofreading = "Proofreading"
)

var (
	editingCoefficient      = decimal.RequireFromString("1.00")
	proofreadingCoefficient = decimal.RequireFromString("0.85")

	// fallbackDeliveryCoefficient is the [0,3000] "1 day" rate.
	fallbackDeliveryCoefficient = decimal.RequireFromString("0.0460")
)

// serviceCoefficients is keyed by the trimmed, lowercased service type.
var serviceCoefficients = map[string]decimal.Decimal{
	"editing":      editingCoefficient,
	"proofreading": proofreadingCoefficient,
	"proof":        proofreadingCoefficient,
}

// Tier is a word-count bucket with its per-word delivery rates.
// Max of 0 marks the open-ended top tier.
type Tier struct {
	Min   int
	Max   int
	Rates map[string]decimal.Decimal
}

// Contains reports whether wordCount falls inside the tier.
func (t Tier) Contains(wordCount int) bool {
	if wordCount < t.Min {
		return false
	}
	return t.Max == 0 || wordCount <= t.Max
}

func rates(h12, d1, d2, d3, d5, d10, d15 string) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		Delivery12Hours: decimal.RequireFromString(h12),
		Delivery1Day:    decimal.RequireFromString(d1),
		Delivery2Days:   decimal.RequireFromString(d2),
		Delivery3Days:   decimal.RequireFromString(d3),
		Delivery5Days:   decimal.RequireFromString(d5),
		Delivery10Days:  decimal.RequireFromString(d10),
		Delivery15Days:  decimal.RequireFromString(d15),
	}
}

// tiers partitions all non-negative word counts. Order matters: lookups
// take the first tier that contains the count.
var tiers = []Tier{
	{Min: 0, Max: 3000, Rates: rates("0.0560", "0.0460", "0.0380", "0.0330", "0.0310", "0.0290", "0.0270")},
	{Min: 3001, Max: 7500, Rates: rates("0.0560", "0.0460", "0.0380", "0.0330", "0.0310", "0.0290", "0.0270")},
	{Min: 7501, Max: 15000, Rates: rates("0.0560", "0.0440", "0.0360", "0.0330", "0.0310", "0.0260", "0.0250")},
	{Min: 15001, Max: 60000, Rates: rates("0.0560", "0.0440", "0.0330", "0.0310", "0.0280", "0.0260", "0.0250")},
	{Min: 60001, Max: 0, Rates: rates("0.0560", "0.0440", "0.0360", "0.0290", "0.0260", "0.0250", "0.0230")},
}

// promotionDiscounts maps an uppercased code to its discount percentage.
var promotionDiscounts = map[string]int{
	"IEJEEPRO": 10,
	"SUTJIPTO": 15,
	"MRCH2023": 20,
	"FALLDEAL": 20,
	"BEST2025": 25,
	"OPENED22": 10,
	"DRSMITHA": 15,
}

// deliveryLabels lists the labels from fastest to slowest.
var deliveryLabels = []string{
	Delivery12Hours,
	Delivery1Day,
	Delivery2Days,
	Delivery3Days,
	Delivery5Days,
	Delivery10Days,
	Delivery15Days,
}

var deliveryHours = map[string]int{
	Delivery12Hours: 12,
	Delivery1Day:    24,
	Delivery2Days:   48,
	Delivery3Days:   72,
	Delivery5Days:   120,
	Delivery10Days:  240,
	Delivery15Days:  360,
}
