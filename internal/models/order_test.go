package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   OrderStatus
		wantOK bool
	}{
		{"Pending", OrderStatusPending, true},
		{"in progress", OrderStatusInProgress, true},
		{"  CANCELLED ", OrderStatusCancelled, true},
		{"shipped", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseOrderStatus(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusIncomplete: false,
		OrderStatusPending:    false,
		OrderStatusInProgress: false,
		OrderStatusComplete:   true,
		OrderStatusCancelled:  true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("Expected %s terminal=%v, got %v", status, want, got)
		}
	}
}

func TestParseEnglishVariant(t *testing.T) {
	tests := []struct {
		input  string
		want   EnglishVariant
		wantOK bool
	}{
		{"", EnglishVariantNone, true},
		{"n/a", EnglishVariantNone, true},
		{"british", EnglishVariantBritish, true},
		{"American", EnglishVariantAmerican, true},
		{"Australian", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseEnglishVariant(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestUpdateOrderRequest_Apply(t *testing.T) {
	title := "  Thesis chapter 2 "
	variant := "british"
	bogus := "klingon"

	order := &Order{ProjectTitle: "Old", EnglishVariant: EnglishVariantAmerican, FileName: "a.docx"}

	req := &UpdateOrderRequest{ProjectTitle: &title, EnglishVariant: &variant}
	if req.IsEmpty() {
		t.Fatal("Expected request with fields to be non-empty")
	}
	req.Apply(order)

	if order.ProjectTitle != "Thesis chapter 2" {
		t.Errorf("Expected trimmed title, got %q", order.ProjectTitle)
	}
	if order.EnglishVariant != EnglishVariantBritish {
		t.Errorf("Expected British, got %q", order.EnglishVariant)
	}
	if order.FileName != "a.docx" {
		t.Errorf("Expected untouched file name, got %q", order.FileName)
	}

	(&UpdateOrderRequest{EnglishVariant: &bogus}).Apply(order)
	if order.EnglishVariant != EnglishVariantBritish {
		t.Errorf("Expected unknown variant to be ignored, got %q", order.EnglishVariant)
	}

	if !(&UpdateOrderRequest{}).IsEmpty() {
		t.Error("Expected empty request to report IsEmpty")
	}
}

func TestOrderListFilter_IsDefaultPage(t *testing.T) {
	pending := OrderStatusPending

	tests := []struct {
		name   string
		filter OrderListFilter
		want   bool
	}{
		{"first page", OrderListFilter{UserID: "u1", Limit: 20}, true},
		{"status filter", OrderListFilter{UserID: "u1", Status: &pending}, false},
		{"search", OrderListFilter{UserID: "u1", Search: "thesis"}, false},
		{"second page", OrderListFilter{UserID: "u1", Offset: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsDefaultPage(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOrderView_RendersPriceWithTwoDecimals(t *testing.T) {
	order := &Order{ID: "o1", Price: decimal.RequireFromString("46"), Status: OrderStatusIncomplete}

	data, err := json.Marshal(NewOrderView(order))
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if got["price"] != "46.00" {
		t.Errorf("Expected price 46.00, got %v", got["price"])
	}
	if got["id"] != "o1" {
		t.Errorf("Expected id o1, got %v", got["id"])
	}

	views := NewOrderViews([]*Order{order, {ID: "o2", Price: decimal.RequireFromString("31.275")}})
	if len(views) != 2 || views[1].Price != "31.28" {
		t.Errorf("Expected two views with second price 31.28, got %+v", views)
	}
}
