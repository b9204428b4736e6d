package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL database
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Set connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize tables
	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables() error {
	queries := []string{
		// Users table (registered users and anonymous visitor principals)
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			username VARCHAR(80) NOT NULL UNIQUE,
			email VARCHAR(120) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		// Businesses table
		`CREATE TABLE IF NOT EXISTS businesses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(50) NOT NULL,
			address VARCHAR(300) NOT NULL,
			phone VARCHAR(20),
			email VARCHAR(120),
			website VARCHAR(200),
			image_url VARCHAR(500),
			hours TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			is_verified BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		// Reviews table
		`CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			user_id UUID NOT NULL REFERENCES users(id),
			business_id UUID NOT NULL REFERENCES businesses(id),
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			title VARCHAR(200),
			content TEXT NOT NULL,
			is_verified BOOLEAN NOT NULL DEFAULT TRUE,
			helpful_count INTEGER NOT NULL DEFAULT 0
		)`,

		// Deals table
		`CREATE TABLE IF NOT EXISTS deals (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			business_id UUID NOT NULL REFERENCES businesses(id),
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			discount_type VARCHAR(20),
			discount_value DOUBLE PRECISION,
			code VARCHAR(50),
			start_date TIMESTAMP NOT NULL DEFAULT NOW(),
			end_date TIMESTAMP,
			terms TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			redemption_count INTEGER NOT NULL DEFAULT 0
		)`,

		// Favorites table. The unique constraint is what makes duplicate
		// adds race-free: inserts go through ON CONFLICT DO NOTHING.
		`CREATE TABLE IF NOT EXISTS favorites (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			user_id UUID NOT NULL REFERENCES users(id),
			business_id UUID NOT NULL REFERENCES businesses(id),
			notes TEXT,
			UNIQUE(user_id, business_id)
		)`,

		// CAPTCHA challenges table. Expired rows are removed by the
		// cleanup loop, not at verification time.
		`CREATE TABLE IF NOT EXISTS captcha_challenges (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			session_id VARCHAR(100) NOT NULL,
			answer VARCHAR(50) NOT NULL,
			is_solved BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		// Create indexes for better performance
		`CREATE INDEX IF NOT EXISTS idx_users_username_lower ON users(LOWER(username))`,
		`CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users(LOWER(email))`,
		`CREATE INDEX IF NOT EXISTS idx_businesses_category ON businesses(category)`,
		`CREATE INDEX IF NOT EXISTS idx_businesses_created_at ON businesses(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_business_id ON reviews(business_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_user_id ON reviews(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_deals_business_id ON deals(business_id)`,
		`CREATE INDEX IF NOT EXISTS idx_deals_is_active ON deals(is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_captcha_challenges_created_at ON captcha_challenges(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_captcha_challenges_session_id ON captcha_challenges(session_id)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
