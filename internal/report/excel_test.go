package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vibedit/vibedit-orders-service/internal/models"
)

func sampleOrders() []*models.Order {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	order := func(id string, status models.OrderStatus, price string) *models.Order {
		return &models.Order{
			ID:                id,
			UserID:            "user-1",
			OrderNumber:       "ORD-" + id,
			ProjectTitle:      "Title " + id,
			ServiceType:       "Editing",
			Status:            status,
			Price:             decimal.RequireFromString(price),
			DeliveryTimeLabel: "1 day",
			WordCount:         1000,
			EnglishVariant:    models.EnglishVariantAmerican,
			CreatedAt:         created,
			DueDate:           created.Add(24 * time.Hour),
		}
	}

	return []*models.Order{
		order("a", models.OrderStatusPending, "46.00"),
		order("b", models.OrderStatusPending, "31.28"),
		order("c", models.OrderStatusComplete, "100.50"),
		order("d", models.OrderStatusCancelled, "20.00"),
	}
}

func TestSummarize(t *testing.T) {
	totals := Summarize(sampleOrders())

	tests := []struct {
		status      models.OrderStatus
		wantCount   int
		wantRevenue string
	}{
		{models.OrderStatusPending, 2, "77.28"},
		{models.OrderStatusComplete, 1, "100.5"},
		{models.OrderStatusCancelled, 1, "0"},
		{models.OrderStatusInProgress, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := totals[tt.status]
			if got.Count != tt.wantCount {
				t.Errorf("Expected count %d, got %d", tt.wantCount, got.Count)
			}
			if !got.Revenue.Equal(decimal.RequireFromString(tt.wantRevenue)) {
				t.Errorf("Expected revenue %s, got %s", tt.wantRevenue, got.Revenue)
			}
		})
	}
}

func TestWriteOrdersWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOrdersWorkbook(&buf, sampleOrders()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(&buf, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != OrdersSheet || sheets[1] != SummarySheet {
		t.Fatalf("Expected [Orders Summary], got %v", sheets)
	}

	rows, err := f.GetRows(OrdersSheet)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("Expected header plus 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Order Number" || rows[0][9] != "Price" {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if rows[2][0] != "ORD-b" || rows[2][9] != "31.28" {
		t.Errorf("Unexpected second order row %v", rows[2])
	}
	if rows[1][11] != "2024-03-01 10:00" || rows[1][12] != "2024-03-02 10:00" {
		t.Errorf("Unexpected dates %v", rows[1][11:])
	}

	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("Failed to read summary: %v", err)
	}
	if len(summary) != len(models.OrderStatuses)+2 {
		t.Fatalf("Expected %d summary rows, got %d", len(models.OrderStatuses)+2, len(summary))
	}
	last := summary[len(summary)-1]
	if last[0] != "Total" || last[1] != "4" || last[2] != "177.78" {
		t.Errorf("Unexpected total row %v", last)
	}
}

func TestWriteOrdersWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOrdersWorkbook(&buf, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected a workbook to be written")
	}
}
