package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusAccepted   OrderStatus = "accepted"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusDelivering OrderStatus = "delivering"
	StatusReceived   OrderStatus = "received"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusToDeduct   OrderStatus = "to_deduct"
	StatusPaid       OrderStatus = "paid"
)

// ParseOrderStatus normalizes s and reports whether it names a known status.
// The legacy "accepted" value maps to StatusConfirmed.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusAccepted:
		return StatusConfirmed, true
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivering,
		StatusReceived, StatusDelivered, StatusCancelled, StatusToDeduct, StatusPaid:
		return st, true
	}
	return "", false
}

type PaymentMethod string

const (
	PaymentCard            PaymentMethod = "card"
	PaymentCash            PaymentMethod = "cash"
	PaymentPix             PaymentMethod = "pix"
	PaymentPayrollDiscount PaymentMethod = "payroll_discount"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case PaymentCard, PaymentCash, PaymentPix, PaymentPayrollDiscount:
		return m, true
	}
	return "", false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "a_receber"
	PaymentReceived PaymentStatus = "recebido"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	p := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PaymentPending, PaymentReceived:
		return p, true
	}
	return "", false
}

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

// OrderItem is the priced snapshot of a cart row taken at order creation.
type OrderItem struct {
	MenuItemID         string                   `json:"menuItemId"`
	Name               string                   `json:"name"`
	Price              decimal.Decimal          `json:"price"`
	Quantity           int                      `json:"quantity"`
	Notes              string                   `json:"notes,omitempty"`
	PriceFrom          bool                     `json:"priceFrom"`
	SelectedVariations []SelectedVariationGroup `json:"selectedVariations"`
	Subtotal           decimal.Decimal          `json:"subtotal"`
}

// Order is immutable in its pricing once placed; only status, payment status,
// deliverer and timestamps change afterwards.
type Order struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"companyId"`
	CustomerName       string           `json:"customerName"`
	CustomerPhone      string           `json:"customerPhone"`
	Address            Address          `json:"address"`
	Items              []OrderItem      `json:"items"`
	Status             OrderStatus      `json:"status"`
	PaymentMethod      PaymentMethod    `json:"paymentMethod"`
	PaymentStatus      PaymentStatus    `json:"paymentStatus"`
	Subtotal           decimal.Decimal  `json:"subtotal"`
	DiscountAmount     decimal.Decimal  `json:"discountAmount"`
	Total              decimal.Decimal  `json:"total"`
	Observations       string           `json:"observations,omitempty"`
	CouponCode         *string          `json:"couponCode,omitempty"`
	CouponType         *CouponType      `json:"couponType,omitempty"`
	CouponValue        *decimal.Decimal `json:"couponValue,omitempty"`
	DelivererID        *string          `json:"delivererId,omitempty"`
	CancellationReason string           `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
	DeliveredAt        *time.Time       `json:"deliveredAt,omitempty"`
}
