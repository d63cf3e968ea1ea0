package db

import "database/sql"

// EnsureSchema creates the ledger tables when missing. DDL is idempotent so
// the service can boot against an empty database.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'tenant',
			password_hash VARCHAR(255) NOT NULL,
			subaccount_code VARCHAR(100) NULL,
			account_number VARCHAR(100) NULL,
			bank_code VARCHAR(32) NULL,
			created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
			UNIQUE KEY uniq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS apartments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			landlord_id BIGINT NOT NULL,
			title VARCHAR(255) NOT NULL,
			location VARCHAR(255) NOT NULL,
			price_pesewas BIGINT NOT NULL,
			subaccount_code VARCHAR(100) NULL,
			created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
			KEY idx_apartments_landlord (landlord_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			tenant_email VARCHAR(255) NOT NULL,
			apartment_id BIGINT NOT NULL,
			apartment_title VARCHAR(255) NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'pending',
			created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
			paid_amount BIGINT NULL,
			base_price BIGINT NULL,
			commission BIGINT NULL,
			commission_rate DOUBLE NULL,
			subaccount_code VARCHAR(100) NULL,
			paid_at DATETIME(3) NULL,
			KEY idx_bookings_tenant_apartment (tenant_id, apartment_id, status),
			KEY idx_bookings_email_apartment (tenant_email, apartment_id, status),
			KEY idx_bookings_paid_at (paid_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS admin_config (
			id TINYINT PRIMARY KEY,
			commission_rate DOUBLE NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
