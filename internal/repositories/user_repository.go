package repositories

import (
	"database/sql"

	intconfig "quickrent/internal/config"
	"quickrent/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, name, email, role, password_hash,
	       COALESCE(subaccount_code,''), COALESCE(account_number,''), COALESCE(bank_code,'')`

func (r UserRepository) Create(u *models.User) error {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, role, password_hash) VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, u.Role, u.PasswordHash,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	return r.scanOne(r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id))
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	return r.scanOne(r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email=? LIMIT 1`, email))
}

func (r UserRepository) scanOne(row *sql.Row) (models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash,
		&u.SubaccountCode, &u.AccountNumber, &u.BankCode,
	); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// SetPayoutAccount records the gateway subaccount and the bank details it was
// created from.
func (r UserRepository) SetPayoutAccount(id int64, subaccountCode, accountNumber, bankCode string) error {
	_, err := r.db().Exec(`
		UPDATE users SET subaccount_code=?, account_number=?, bank_code=? WHERE id=?`,
		subaccountCode, accountNumber, bankCode, id,
	)
	return err
}
