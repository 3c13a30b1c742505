// Package report renders order exports.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vibedit/vibedit-orders-service/internal/models"
)

const (
	OrdersSheet  = "Orders"
	SummarySheet = "Summary"

	timeLayout = "2006-01-02 15:04"
	moneyFmt   = "0.00"
)

var orderHeaders = []interface{}{
	"Order Number", "Order ID", "User ID", "Title", "Service", "Words",
	"Delivery", "English", "Promotion", "Price", "Status", "Created At", "Due Date",
}

var summaryHeaders = []interface{}{"Status", "Orders", "Revenue"}

// WriteOrdersWorkbook writes orders as an .xlsx workbook to w. Prices stay
// numeric so the sheet can be summed.
func WriteOrdersWorkbook(w io.Writer, orders []*models.Order) error {
	const operation = "report.WriteOrdersWorkbook"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("%s: failed to create sheet: %w", operation, err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: stringPtr(moneyFmt)})
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	if err := writeOrdersSheet(f, orders, header, money); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if err := writeSummarySheet(f, orders, header, money); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	if index, err := f.GetSheetIndex(OrdersSheet); err == nil {
		f.SetActiveSheet(index)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%s: failed to write workbook: %w", operation, err)
	}
	return nil
}

func writeOrdersSheet(f *excelize.File, orders []*models.Order, header, money int) error {
	if err := f.SetSheetRow(OrdersSheet, "A1", &orderHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(OrdersSheet, "A1", "M1", header); err != nil {
		return err
	}

	for i, order := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			order.OrderNumber,
			order.ID,
			order.UserID,
			order.ProjectTitle,
			order.ServiceType,
			order.WordCount,
			order.DeliveryTimeLabel,
			string(order.EnglishVariant),
			order.PromotionCode,
			order.Price.InexactFloat64(),
			string(order.Status),
			order.CreatedAt.Format(timeLayout),
			order.DueDate.Format(timeLayout),
		}
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(orders) > 0 {
		last := fmt.Sprintf("J%d", len(orders)+1)
		if err := f.SetCellStyle(OrdersSheet, "J2", last, money); err != nil {
			return err
		}
	}

	return f.SetColWidth(OrdersSheet, "A", "M", 18)
}

// StatusTotals aggregates the orders in one status.
type StatusTotals struct {
	Count   int
	Revenue decimal.Decimal
}

// Summarize counts orders and sums their prices per status. Cancelled
// orders are counted but contribute no revenue.
func Summarize(orders []*models.Order) map[models.OrderStatus]StatusTotals {
	totals := make(map[models.OrderStatus]StatusTotals, len(models.OrderStatuses))
	for _, order := range orders {
		t := totals[order.Status]
		t.Count++
		if order.Status != models.OrderStatusCancelled {
			t.Revenue = t.Revenue.Add(order.Price)
		}
		totals[order.Status] = t
	}
	return totals
}

func writeSummarySheet(f *excelize.File, orders []*models.Order, header, money int) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "C1", header); err != nil {
		return err
	}

	totals := Summarize(orders)
	grand := StatusTotals{}

	rowNum := 2
	for _, status := range models.OrderStatuses {
		t := totals[status]
		grand.Count += t.Count
		grand.Revenue = grand.Revenue.Add(t.Revenue)

		row := []interface{}{string(status), t.Count, t.Revenue.InexactFloat64()}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return err
		}
		rowNum++
	}

	total := []interface{}{"Total", grand.Count, grand.Revenue.InexactFloat64()}
	if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", rowNum), &total); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), header); err != nil {
		return err
	}

	if err := f.SetCellStyle(SummarySheet, "C2", fmt.Sprintf("C%d", rowNum), money); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "C", 16)
}

func stringPtr(s string) *string {
	return &s
}
