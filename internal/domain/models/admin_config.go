package models

// DefaultCommissionRate applies when the admin config record is absent.
const DefaultCommissionRate = 5.0

// AdminConfig is a singleton record; only the admin mutates it.
type AdminConfig struct {
	CommissionRate float64 `json:"commission_rate"`
}
