package repositories

import (
	"database/sql"

	intconfig "quickrent/internal/config"
	"quickrent/internal/domain/models"
)

// BookingRepository is the ledger store adapter for booking records. The
// pending->paid transition goes through MarkPaid, a conditional update keyed
// on the current status so concurrent confirmations cannot both win.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, tenant_id, tenant_email, apartment_id, apartment_title, status, created_at,
	       COALESCE(paid_amount,0), COALESCE(base_price,0), COALESCE(commission,0),
	       COALESCE(commission_rate,0), COALESCE(subaccount_code,''), paid_at`

func scanBooking(row *sql.Row) (models.Booking, error) {
	var b models.Booking
	var paidAt sql.NullTime
	if err := row.Scan(
		&b.ID,
		&b.TenantID,
		&b.TenantEmail,
		&b.ApartmentID,
		&b.ApartmentTitle,
		&b.Status,
		&b.CreatedAt,
		&b.PaidAmount,
		&b.BasePrice,
		&b.Commission,
		&b.CommissionRate,
		&b.SubaccountCode,
		&paidAt,
	); err != nil {
		return models.Booking{}, err
	}
	if paidAt.Valid {
		t := paidAt.Time
		b.PaidAt = &t
	}
	return b, nil
}

// Create inserts a pending booking and fills in its generated ID.
func (r BookingRepository) Create(b *models.Booking) error {
	res, err := r.db().Exec(`
		INSERT INTO bookings (tenant_id, tenant_email, apartment_id, apartment_title, status)
		VALUES (?, ?, ?, ?, ?)`,
		b.TenantID, b.TenantEmail, b.ApartmentID, b.ApartmentTitle, string(models.BookingPending),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	b.Status = models.BookingPending
	return nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	return scanBooking(row)
}

// HasPending reports whether the tenant already holds an unpaid booking for
// the apartment.
func (r BookingRepository) HasPending(tenantID, apartmentID int64) (bool, error) {
	var one int
	err := r.db().QueryRow(`
		SELECT 1 FROM bookings
		WHERE tenant_id=? AND apartment_id=? AND status=?
		LIMIT 1`,
		tenantID, apartmentID, string(models.BookingPending),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LatestByTenant returns the most recent booking for (tenant, apartment)
// regardless of status. The newest record is the one a just-completed payment
// almost certainly corresponds to; an already-paid result signals the other
// confirmation channel won.
func (r BookingRepository) LatestByTenant(tenantID, apartmentID int64) (models.Booking, error) {
	row := r.db().QueryRow(`
		SELECT `+bookingColumns+` FROM bookings
		WHERE tenant_id=? AND apartment_id=?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		tenantID, apartmentID,
	)
	return scanBooking(row)
}

// LatestByEmail resolves the webhook channel, which only carries the payer
// email echoed back by the gateway.
func (r BookingRepository) LatestByEmail(email string, apartmentID int64) (models.Booking, error) {
	row := r.db().QueryRow(`
		SELECT `+bookingColumns+` FROM bookings
		WHERE tenant_email=? AND apartment_id=?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		email, apartmentID,
	)
	return scanBooking(row)
}

func (r BookingRepository) ListByTenant(tenantID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+` FROM bookings
		WHERE tenant_id=?
		ORDER BY created_at DESC, id DESC`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		var b models.Booking
		var paidAt sql.NullTime
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.TenantEmail, &b.ApartmentID, &b.ApartmentTitle,
			&b.Status, &b.CreatedAt, &b.PaidAmount, &b.BasePrice, &b.Commission,
			&b.CommissionRate, &b.SubaccountCode, &paidAt,
		); err != nil {
			return nil, err
		}
		if paidAt.Valid {
			t := paidAt.Time
			b.PaidAt = &t
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkPaid applies the payment fields and the paid status in one conditional
// update. It returns false when the booking was no longer pending, i.e. a
// concurrent confirmation already applied the transition.
func (r BookingRepository) MarkPaid(id int64, rec models.PaymentRecord) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET status=?, paid_amount=?, base_price=?, commission=?, commission_rate=?,
		    subaccount_code=?, paid_at=NOW(3)
		WHERE id=? AND status=?`,
		string(models.BookingPaid),
		rec.PaidAmount, rec.BasePrice, rec.Commission, rec.CommissionRate, rec.SubaccountCode,
		id, string(models.BookingPending),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// RevenueSummary aggregates paid bookings for the admin dashboard.
type RevenueSummary struct {
	PaidBookings    int64 `json:"paid_bookings"`
	TotalRevenue    int64 `json:"total_revenue"`
	TotalCommission int64 `json:"total_commission"`
}

func (r BookingRepository) SummarizePaid() (RevenueSummary, error) {
	var s RevenueSummary
	err := r.db().QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(paid_amount),0), COALESCE(SUM(commission),0)
		FROM bookings WHERE status=?`,
		string(models.BookingPaid),
	).Scan(&s.PaidBookings, &s.TotalRevenue, &s.TotalCommission)
	return s, err
}

// MonthlyRevenue is one month's rollup of paid bookings.
type MonthlyRevenue struct {
	Month           string `json:"month"`
	PaidBookings    int64  `json:"paid_bookings"`
	TotalRevenue    int64  `json:"total_revenue"`
	TotalCommission int64  `json:"total_commission"`
}

func (r BookingRepository) SummarizePaidMonthly() ([]MonthlyRevenue, error) {
	rows, err := r.db().Query(`
		SELECT DATE_FORMAT(paid_at, '%Y-%m'), COUNT(*),
		       COALESCE(SUM(paid_amount),0), COALESCE(SUM(commission),0)
		FROM bookings
		WHERE status=? AND paid_at IS NOT NULL
		GROUP BY DATE_FORMAT(paid_at, '%Y-%m')
		ORDER BY DATE_FORMAT(paid_at, '%Y-%m') DESC`,
		string(models.BookingPaid),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRevenue
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.PaidBookings, &m.TotalRevenue, &m.TotalCommission); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
