package repositories

import (
	"database/sql"

	intconfig "quickrent/internal/config"
	"quickrent/internal/domain/models"
)

// AdminConfigRepository reads and writes the commission-rate singleton.
type AdminConfigRepository struct {
	DB *sql.DB
}

func (r AdminConfigRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetRate returns the configured commission rate, or the default when the
// record has never been written.
func (r AdminConfigRepository) GetRate() (float64, error) {
	var rate float64
	err := r.db().QueryRow(`SELECT commission_rate FROM admin_config WHERE id=1`).Scan(&rate)
	if err == sql.ErrNoRows {
		return models.DefaultCommissionRate, nil
	}
	if err != nil {
		return 0, err
	}
	return rate, nil
}

func (r AdminConfigRepository) SetRate(rate float64) error {
	_, err := r.db().Exec(`
		INSERT INTO admin_config (id, commission_rate) VALUES (1, ?)
		ON DUPLICATE KEY UPDATE commission_rate=VALUES(commission_rate)`,
		rate,
	)
	return err
}
