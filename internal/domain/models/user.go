package models

const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`

	// Payout details, set when a landlord completes bank setup.
	SubaccountCode string `json:"subaccount_code,omitempty"`
	AccountNumber  string `json:"account_number,omitempty"`
	BankCode       string `json:"bank_code,omitempty"`
}

// Session is the explicit per-request identity passed into handlers and
// services, replacing ambient current-user state.
type Session struct {
	UserID int64
	Email  string
	Role   string
}
