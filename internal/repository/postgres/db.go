package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
)

// InitDB opens the shared Postgres handle, verifies connectivity, and runs
// the schema migration. The caller owns the handle and closes it at
// shutdown; nothing else opens connections.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("Database connected and migrated")
	return db, nil
}

func migrateDB(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			farmer_id TEXT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			quality TEXT NOT NULL DEFAULT 'standard',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit TEXT NOT NULL DEFAULT 'kg',
			quantity INT NOT NULL DEFAULT 0,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			location TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS demands (
			id TEXT PRIMARY KEY,
			retailer_id TEXT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			quantity INT NOT NULL DEFAULT 0,
			unit TEXT NOT NULL DEFAULT 'kg',
			price_min DOUBLE PRECISION NOT NULL DEFAULT 0,
			price_max DOUBLE PRECISION NOT NULL DEFAULT 0,
			required_by TIMESTAMP NOT NULL DEFAULT NOW(),
			location TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'open',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS transports (
			id TEXT PRIMARY KEY,
			transporter_id TEXT NOT NULL REFERENCES users(id),
			vehicle_type TEXT NOT NULL DEFAULT '',
			capacity_weight_kg INT NOT NULL DEFAULT 0,
			capacity_volume_m3 INT NOT NULL DEFAULT 0,
			departure TEXT NOT NULL,
			destination TEXT NOT NULL,
			departure_at TIMESTAMP NOT NULL DEFAULT NOW(),
			price_per_km DOUBLE PRECISION NOT NULL DEFAULT 0,
			price_per_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'available',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			buyer_id TEXT NOT NULL REFERENCES users(id),
			seller_id TEXT NOT NULL REFERENCES users(id),
			transport_id TEXT NOT NULL DEFAULT '',
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			pickup_address TEXT NOT NULL DEFAULT '',
			delivery_address TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(id),
			product_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity INT NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			recipient_id TEXT NOT NULL REFERENCES users(id),
			sender_id TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'system',
			title TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			related_id TEXT NOT NULL DEFAULT '',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_id, is_read);
		CREATE INDEX IF NOT EXISTS idx_products_farmer ON products (farmer_id);
		CREATE INDEX IF NOT EXISTS idx_demands_retailer ON demands (retailer_id);
	`)
	return err
}
