package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('admin', 'user');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		full_name VARCHAR(255),
		email VARCHAR(255),
		role user_role NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id VARCHAR(64) NOT NULL UNIQUE,
		customer_name VARCHAR(255),
		customer_name_code VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		supplier_id VARCHAR(64) NOT NULL UNIQUE,
		supplier_name VARCHAR(255),
		supplier_name_code VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_no VARCHAR(32) NOT NULL UNIQUE,
		vehicle_type VARCHAR(64),
		minimum_kms_per_day NUMERIC,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS trips (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		booking_id VARCHAR(64) NOT NULL UNIQUE,
		booking_date DATE NOT NULL,
		origin_location VARCHAR(255) NOT NULL,
		destination_location VARCHAR(255) NOT NULL,
		origin_lat_lon VARCHAR(64),
		destination_lat_lon VARCHAR(64),
		transportation_distance_km NUMERIC,
		gps_provider VARCHAR(64),
		trip_type VARCHAR(64),
		vehicle_no VARCHAR(32),
		vehicle_type VARCHAR(64),
		driver_name VARCHAR(255),
		driver_mobile_no VARCHAR(32),
		customer_id VARCHAR(64),
		customer_name_code VARCHAR(64),
		supplier_id VARCHAR(64),
		supplier_name_code VARCHAR(64),
		fuel_cost NUMERIC,
		revenue NUMERIC,
		profit NUMERIC,
		on_time BOOLEAN,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_user_id ON trips (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_booking_date ON trips (booking_date);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips (created_at);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_trips_updated_at') THEN
			CREATE TRIGGER trg_trips_updated_at
				BEFORE UPDATE ON trips
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_profiles_updated_at') THEN
			CREATE TRIGGER trg_profiles_updated_at
				BEFORE UPDATE ON profiles
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
	`CREATE OR REPLACE FUNCTION get_user_role(user_uuid UUID)
	RETURNS user_role AS $$
	DECLARE
		result user_role;
	BEGIN
		SELECT role INTO result FROM profiles WHERE user_id = user_uuid;
		RETURN COALESCE(result, 'user');
	END;
	$$ LANGUAGE plpgsql STABLE;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
