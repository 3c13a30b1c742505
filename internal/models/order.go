package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusIncomplete OrderStatus = "Incomplete"
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusComplete   OrderStatus = "Complete"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusIncomplete,
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusComplete,
	OrderStatusCancelled,
}

// ParseOrderStatus matches s against the known statuses ignoring case.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	for _, status := range OrderStatuses {
		if strings.EqualFold(string(status), s) {
			return status, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further work happens on the order.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusComplete || s == OrderStatusCancelled
}

// EnglishVariant is the spelling convention an editor should follow.
type EnglishVariant string

const (
	EnglishVariantNone     EnglishVariant = "N/A"
	EnglishVariantAmerican EnglishVariant = "American"
	EnglishVariantBritish  EnglishVariant = "British"
)

// ParseEnglishVariant matches s ignoring case. Empty input is N/A.
func ParseEnglishVariant(s string) (EnglishVariant, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EnglishVariantNone, true
	}
	for _, v := range []EnglishVariant{EnglishVariantNone, EnglishVariantAmerican, EnglishVariantBritish} {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

// Order is a customer's editing or proofreading job.
type Order struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	OrderNumber        string          `json:"order_number"`
	ProjectTitle       string          `json:"project_title"`
	ProjectDescription string          `json:"project_description,omitempty"`
	ServiceType        string          `json:"service_type"`
	Status             OrderStatus     `json:"status"`
	Price              decimal.Decimal `json:"price"`
	DeliveryTime       int             `json:"delivery_time_hours"`
	DeliveryTimeLabel  string          `json:"delivery_time_label"`
	WordCount          int             `json:"word_count"`
	EnglishVariant     EnglishVariant  `json:"english_variant"`
	PromotionCode      string          `json:"promotion_code,omitempty"`
	PaymentID          string          `json:"payment_id,omitempty"`
	FileURL            string          `json:"file_url,omitempty"`
	FileName           string          `json:"file_name,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DueDate            time.Time       `json:"due_date"`
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID string) bool {
	return o.UserID == userID
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	ProjectTitle       string `json:"project_title"`
	ProjectDescription string `json:"project_description"`
	ServiceType        string `json:"service_type"`
	DeliveryTimeLabel  string `json:"delivery_time_label"`
	WordCount          int    `json:"word_count"`
	EnglishVariant     string `json:"english_variant"`
	PromotionCode      string `json:"promotion_code"`
	FileURL            string `json:"file_url"`
	FileName           string `json:"file_name"`
}

// UpdateOrderRequest changes descriptive fields. Nil fields are left as is.
// Pricing inputs cannot be changed once an order is placed.
type UpdateOrderRequest struct {
	ProjectTitle       *string `json:"project_title,omitempty"`
	ProjectDescription *string `json:"project_description,omitempty"`
	EnglishVariant     *string `json:"english_variant,omitempty"`
	FileURL            *string `json:"file_url,omitempty"`
	FileName           *string `json:"file_name,omitempty"`
}

// IsEmpty reports whether the request changes nothing.
func (r *UpdateOrderRequest) IsEmpty() bool {
	return r.ProjectTitle == nil &&
		r.ProjectDescription == nil &&
		r.EnglishVariant == nil &&
		r.FileURL == nil &&
		r.FileName == nil
}

// Apply copies the set fields onto order.
func (r *UpdateOrderRequest) Apply(order *Order) {
	if r.ProjectTitle != nil {
		order.ProjectTitle = strings.TrimSpace(*r.ProjectTitle)
	}
	if r.ProjectDescription != nil {
		order.ProjectDescription = *r.ProjectDescription
	}
	if r.EnglishVariant != nil {
		if v, ok := ParseEnglishVariant(*r.EnglishVariant); ok {
			order.EnglishVariant = v
		}
	}
	if r.FileURL != nil {
		order.FileURL = *r.FileURL
	}
	if r.FileName != nil {
		order.FileName = *r.FileName
	}
}

// OrderListFilter narrows an order listing. An empty UserID matches every
// user and is only used by reporting.
type OrderListFilter struct {
	UserID string
	Status *OrderStatus
	Search string
	Limit  int
	Offset int
}

// IsDefaultPage reports whether the filter asks for an unfiltered first page.
func (f *OrderListFilter) IsDefaultPage() bool {
	return f.Status == nil && f.Search == "" && f.Offset == 0
}

// QuoteRequest asks for a price without placing an order.
type QuoteRequest struct {
	ServiceType       string `json:"service_type"`
	DeliveryTimeLabel string `json:"delivery_time_label"`
	WordCount         int    `json:"word_count"`
	PromotionCode     string `json:"promotion_code"`
}

// OrderPage is one page of a listing plus the total number of matches.
type OrderPage struct {
	Orders []*Order `json:"orders"`
	Total  int      `json:"total"`
}

// UpdateOrderStatusRequest moves an order to a new status on behalf of the
// system, for example after a payment event.
type UpdateOrderStatusRequest struct {
	Status    OrderStatus `json:"status"`
	PaymentID string      `json:"payment_id,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}

// OrderView renders an order with its price as a fixed two-decimal string,
// the form clients and downstream consumers expect for money.
type OrderView struct {
	*Order
	Price string `json:"price"`
}

// NewOrderView wraps order for rendering.
func NewOrderView(order *Order) OrderView {
	return OrderView{Order: order, Price: order.Price.StringFixed(2)}
}

// NewOrderViews wraps every order in orders.
func NewOrderViews(orders []*Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, NewOrderView(order))
	}
	return views
}
