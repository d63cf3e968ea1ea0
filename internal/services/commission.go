package services

import (
	"math"

	"quickrent/internal/domain"
)

// Charge is the tenant-facing total and the platform's cut, in pesewas.
type Charge struct {
	Commission  int64 `json:"commission"`
	TotalAmount int64 `json:"total_amount"`
}

// ComputeCharge derives the platform commission and the total the tenant pays
// from the apartment price and the admin-configured rate. It is pure: the
// reconciler recomputes it at confirmation time, independent of whatever the
// client displayed.
func ComputeCharge(pricePesewas int64, ratePercent float64) (Charge, error) {
	if pricePesewas <= 0 {
		return Charge{}, domain.InvalidInputError{Field: "price", Msg: "must be positive"}
	}
	if ratePercent < 0 || ratePercent > 100 || math.IsNaN(ratePercent) {
		return Charge{}, domain.InvalidInputError{Field: "commission_rate", Msg: "must be between 0 and 100"}
	}

	commission := int64(math.Round(float64(pricePesewas) * ratePercent / 100))
	return Charge{
		Commission:  commission,
		TotalAmount: pricePesewas + commission,
	}, nil
}
