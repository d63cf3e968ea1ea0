package repositories

import (
	"database/sql"
	"strings"

	intconfig "quickrent/internal/config"
	"quickrent/internal/domain/models"
)

type ApartmentRepository struct {
	DB *sql.DB
}

func (r ApartmentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const apartmentColumns = `id, landlord_id, title, location, price_pesewas, COALESCE(subaccount_code,''), created_at`

func (r ApartmentRepository) Create(a *models.Apartment) error {
	var sub any
	if strings.TrimSpace(a.SubaccountCode) != "" {
		sub = a.SubaccountCode
	}
	res, err := r.db().Exec(`
		INSERT INTO apartments (landlord_id, title, location, price_pesewas, subaccount_code)
		VALUES (?, ?, ?, ?, ?)`,
		a.LandlordID, a.Title, a.Location, a.PricePesewas, sub,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r ApartmentRepository) GetByID(id int64) (models.Apartment, error) {
	var a models.Apartment
	err := r.db().QueryRow(`SELECT `+apartmentColumns+` FROM apartments WHERE id=? LIMIT 1`, id).Scan(
		&a.ID, &a.LandlordID, &a.Title, &a.Location, &a.PricePesewas, &a.SubaccountCode, &a.CreatedAt,
	)
	if err != nil {
		return models.Apartment{}, err
	}
	return a, nil
}

func (r ApartmentRepository) List() ([]models.Apartment, error) {
	return r.list(`SELECT ` + apartmentColumns + ` FROM apartments ORDER BY created_at DESC, id DESC`)
}

func (r ApartmentRepository) ListByLandlord(landlordID int64) ([]models.Apartment, error) {
	return r.list(`SELECT `+apartmentColumns+` FROM apartments WHERE landlord_id=? ORDER BY created_at DESC, id DESC`, landlordID)
}

func (r ApartmentRepository) list(query string, args ...any) ([]models.Apartment, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Apartment
	for rows.Next() {
		var a models.Apartment
		if err := rows.Scan(&a.ID, &a.LandlordID, &a.Title, &a.Location, &a.PricePesewas, &a.SubaccountCode, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update applies partial edits by key presence; only the owning landlord may
// change price and metadata.
func (r ApartmentRepository) Update(id, landlordID int64, upd models.ApartmentUpdate) (bool, error) {
	sets := []string{}
	args := []any{}
	if upd.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *upd.Title)
	}
	if upd.Location != nil {
		sets = append(sets, "location=?")
		args = append(args, *upd.Location)
	}
	if upd.PricePesewas != nil {
		sets = append(sets, "price_pesewas=?")
		args = append(args, *upd.PricePesewas)
	}
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, id, landlordID)

	res, err := r.db().Exec(`UPDATE apartments SET `+strings.Join(sets, ", ")+` WHERE id=? AND landlord_id=?`, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SetSubaccountForLandlord backfills a newly created payout subaccount onto
// every apartment the landlord owns.
func (r ApartmentRepository) SetSubaccountForLandlord(landlordID int64, subaccountCode string) error {
	_, err := r.db().Exec(`UPDATE apartments SET subaccount_code=? WHERE landlord_id=?`, subaccountCode, landlordID)
	return err
}
