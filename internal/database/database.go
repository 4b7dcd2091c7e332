package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		meta_description TEXT,
		keywords TEXT,
		short_description TEXT,
		content TEXT,
		images TEXT,
		price INTEGER,
		price_reference TEXT,
		categories TEXT,
		woo_id BIGINT,
		preview_url TEXT,
		status TEXT DEFAULT 'draft',
		error_message TEXT,
		process_id TEXT,
		workflow_id TEXT,
		confirmed BOOLEAN DEFAULT false,
		process_at TIMESTAMPTZ,
		finished_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS synced_posts (
		id UUID PRIMARY KEY,
		wp_id BIGINT UNIQUE NOT NULL,
		title TEXT,
		slug TEXT,
		content TEXT,
		excerpt TEXT,
		featured_image TEXT,
		status TEXT,
		link TEXT,
		wp_created_at TIMESTAMPTZ,
		wp_modified_at TIMESTAMPTZ,
		author_id BIGINT,
		seo_title TEXT,
		seo_description TEXT,
		category_ids TEXT,
		tag_ids TEXT,
		last_synced_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT,
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS brands (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT,
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS process_records (
		id UUID PRIMARY KEY,
		workflow_id TEXT NOT NULL,
		execution_id TEXT UNIQUE NOT NULL,
		name TEXT,
		status TEXT DEFAULT 'pending',
		input TEXT,
		output TEXT,
		triggered_by TEXT,
		started_at TIMESTAMPTZ,
		finished_at TIMESTAMPTZ,
		error_message TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
