package models

import "time"

// Apartment is a landlord's listing. SubaccountCode stays empty until the
// landlord completes payout setup; charges cannot start without it.
type Apartment struct {
	ID             int64     `json:"id"`
	LandlordID     int64     `json:"landlord_id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	PricePesewas   int64     `json:"price_pesewas"`
	SubaccountCode string    `json:"subaccount_code,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ApartmentUpdate supports partial edits by the owning landlord.
type ApartmentUpdate struct {
	Title        *string
	Location     *string
	PricePesewas *int64
}
