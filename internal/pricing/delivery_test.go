package pricing

import "testing"

func TestLabelToHours(t *testing.T) {
	tests := []struct {
		label    string
		expected int
	}{
		{"12 hours", 12},
		{"1 day", 24},
		{"2 day", 48},
		{"3 day", 72},
		{"5 day", 120},
		{"10 day", 240},
		{"15 day", 360},
		{" 12 HOURS ", 12},
		{"7 days", 24},
		{"", 24},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := LabelToHours(tt.label); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestHoursToLabel(t *testing.T) {
	for _, label := range DeliveryLabels() {
		if got := HoursToLabel(LabelToHours(label)); got != label {
			t.Errorf("Expected round trip of %q, got %q", label, got)
		}
	}

	for _, hours := range []int{0, 1, 36, 168, -24} {
		if got := HoursToLabel(hours); got != Delivery1Day {
			t.Errorf("HoursToLabel(%d): expected %q, got %q", hours, Delivery1Day, got)
		}
	}
}

func TestDeliveryLabels_ReturnsCopy(t *testing.T) {
	labels := DeliveryLabels()
	labels[0] = "changed"

	if DeliveryLabels()[0] != Delivery12Hours {
		t.Error("Expected DeliveryLabels to return an independent slice")
	}
}

func TestPromotionCodes_ReturnsCopy(t *testing.T) {
	codes := PromotionCodes()
	if len(codes) != 7 {
		t.Fatalf("Expected 7 promotion codes, got %d", len(codes))
	}

	codes["FREE100"] = 100
	if _, ok := DiscountPercent("FREE100"); ok {
		t.Error("Expected mutation of the returned map not to affect lookups")
	}
}

func TestIsKnownServiceType(t *testing.T) {
	for _, s := range []string{"Editing", "proofreading", " PROOF "} {
		if !IsKnownServiceType(s) {
			t.Errorf("Expected %q to be known", s)
		}
	}
	for _, s := range []string{"", "translation", "edit"} {
		if IsKnownServiceType(s) {
			t.Errorf("Expected %q to be unknown", s)
		}
	}
}

func TestIsKnownDeliveryLabel(t *testing.T) {
	if !IsKnownDeliveryLabel("10 DAY") {
		t.Error("Expected '10 DAY' to be known")
	}
	if IsKnownDeliveryLabel("24 hours") {
		t.Error("Expected '24 hours' to be unknown")
	}
}

func TestQuote(t *testing.T) {
	b := Quote("proof", " 1 Day ", 1000, "mrch2023")

	if b.ServiceType != ServiceProofreading {
		t.Errorf("Expected service %q, got %q", ServiceProofreading, b.ServiceType)
	}
	if b.DeliveryTimeLabel != Delivery1Day {
		t.Errorf("Expected label %q, got %q", Delivery1Day, b.DeliveryTimeLabel)
	}
	if b.DeliveryFallback {
		t.Error("Expected no delivery fallback")
	}
	if b.TierMin != 0 || b.TierMax != 3000 {
		t.Errorf("Expected tier [0,3000], got [%d,%d]", b.TierMin, b.TierMax)
	}
	if !b.BasePrice.Equal(money("39.10")) {
		t.Errorf("Expected base 39.10, got %s", b.BasePrice)
	}
	if !b.PromotionApplied || b.DiscountPercent != 20 || b.PromotionCode != "MRCH2023" {
		t.Errorf("Expected MRCH2023 at 20%%, got %q at %d (applied=%v)", b.PromotionCode, b.DiscountPercent, b.PromotionApplied)
	}
	// 39.10 * 0.80 = 31.28
	if !b.FinalPrice.Equal(money("31.28")) {
		t.Errorf("Expected final 31.28, got %s", b.FinalPrice)
	}
	if !b.FinalPrice.Equal(CalculatePrice("proof", " 1 Day ", 1000, "mrch2023")) {
		t.Error("Expected quote final price to match CalculatePrice")
	}
}

func TestQuote_Fallbacks(t *testing.T) {
	b := Quote("rewrite", "someday", 500, "NOPE")

	if b.ServiceType != ServiceEditing {
		t.Errorf("Expected service %q, got %q", ServiceEditing, b.ServiceType)
	}
	if !b.DeliveryFallback {
		t.Error("Expected delivery fallback")
	}
	if b.PromotionApplied || b.DiscountPercent != 0 {
		t.Error("Expected no promotion")
	}
	if !b.FinalPrice.Equal(b.BasePrice) || !b.BasePrice.Equal(money("23.00")) {
		t.Errorf("Expected 23.00, got base %s final %s", b.BasePrice, b.FinalPrice)
	}
}
