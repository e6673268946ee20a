//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"slices"
	"time"
)

// Order statuses accepted by the backend.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses accepted by the backend.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// OrderStatuses lists the default order status choices in workflow order.
func OrderStatuses() []string {
	return []string{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}
}

// PaymentStatuses lists the default payment status choices.
func PaymentStatuses() []string {
	return []string{PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded}
}

// Address is a normalised billing or shipping address.
type Address struct {
	FullName   string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Empty reports whether no line of the address is set.
func (a Address) Empty() bool {
	return a == Address{}
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductTitle string  `json:"product_title"`
	VariantSKU   string  `json:"variant_sku"`
	Quantity     int     `json:"quantity"`
	Price        Decimal `json:"price"`
	Subtotal     Decimal `json:"subtotal"`
	Image        string  `json:"image"`
}

// Order is the console's view of an order. The backend nests customer and
// address data in more than one shape; the backend adapter flattens them.
type Order struct {
	ID             int64
	OrderNumber    string
	CustomerName   string
	CustomerEmail  string
	Status         string
	PaymentStatus  string
	ItemsCount     int
	TotalPrice     Decimal
	Subtotal       Decimal
	ShippingCost   Decimal
	CreatedAt      *time.Time
	Items          []OrderItem
	Billing        Address
	Shipping       Address
	Notes          string
	StatusChoices  []string
	PaymentChoices []string
}

// StatusOptions returns the backend-provided status choices or the defaults.
func (o Order) StatusOptions() []string {
	if len(o.StatusChoices) > 0 {
		return o.StatusChoices
	}
	return OrderStatuses()
}

// PaymentOptions returns the backend-provided payment choices or the defaults.
func (o Order) PaymentOptions() []string {
	if len(o.PaymentChoices) > 0 {
		return o.PaymentChoices
	}
	return PaymentStatuses()
}

// OrderStatusUpdate is the body of the order status endpoint.
type OrderStatusUpdate struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Notes         string `json:"notes"`
}

// ValidStatus reports whether s is one of the choices.
func ValidStatus(s string, choices []string) bool {
	return slices.Contains(choices, s)
}
