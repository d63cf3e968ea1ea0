package models

import "time"

type BookingStatus string

const (
	BookingPending BookingStatus = "pending"
	BookingPaid    BookingStatus = "paid"
)

// Booking is a tenant's claim on an apartment, tracked pending -> paid.
// Apartment title and tenant email are denormalized at creation so payment
// matching and history stay correct under concurrent apartment edits.
type Booking struct {
	ID             int64         `json:"id"`
	TenantID       int64         `json:"tenant_id"`
	TenantEmail    string        `json:"tenant_email"`
	ApartmentID    int64         `json:"apartment_id"`
	ApartmentTitle string        `json:"apartment_title"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`

	// Populated only at payment confirmation.
	PaidAmount     int64      `json:"paid_amount,omitempty"`
	BasePrice      int64      `json:"base_price,omitempty"`
	Commission     int64      `json:"commission,omitempty"`
	CommissionRate float64    `json:"commission_rate,omitempty"`
	SubaccountCode string     `json:"subaccount_code,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
}

// PaymentRecord carries the fields written onto a booking by the single
// conditional update that flips it to paid.
type PaymentRecord struct {
	PaidAmount     int64
	BasePrice      int64
	Commission     int64
	CommissionRate float64
	SubaccountCode string
}

// PaymentIntent is the transient tuple handed to the payment gateway. It is
// reconstructible from Booking + Apartment + AdminConfig and never persisted.
type PaymentIntent struct {
	BookingID      int64   `json:"booking_id"`
	ApartmentID    int64   `json:"apartment_id"`
	TenantID       int64   `json:"tenant_id"`
	Email          string  `json:"email"`
	BasePrice      int64   `json:"base_price"`
	Commission     int64   `json:"commission"`
	TotalAmount    int64   `json:"total_amount"`
	CommissionRate float64 `json:"commission_rate"`
	SubaccountCode string  `json:"subaccount_code"`
}
