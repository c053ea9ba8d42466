package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255),
		provider VARCHAR(50) NOT NULL DEFAULT 'password',
		provider_id VARCHAR(255),
		avatar_url VARCHAR(500),
		role VARCHAR(50) NOT NULL DEFAULT 'user',
		status VARCHAR(50) NOT NULL DEFAULT 'active',
		last_login_at TIMESTAMP WITH TIME ZONE,
		login_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS media_files (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		file_name VARCHAR(255) NOT NULL UNIQUE,
		original_name VARCHAR(255) NOT NULL,
		mime_type VARCHAR(100) NOT NULL,
		size_bytes BIGINT NOT NULL,
		uploaded_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Single-row tables for the hero and about sections. The boolean
	// primary key with a CHECK constraint keeps them single-row at the
	// schema level.
	`CREATE TABLE IF NOT EXISTS hero_content (
		id BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
		headline VARCHAR(255) NOT NULL DEFAULT '',
		subheadline TEXT NOT NULL DEFAULT '',
		cta_label VARCHAR(100) NOT NULL DEFAULT '',
		cta_url VARCHAR(500) NOT NULL DEFAULT '',
		background_image_id UUID REFERENCES media_files(id) ON DELETE SET NULL,
		updated_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS about_content (
		id BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
		heading VARCHAR(255) NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		skills TEXT[] NOT NULL DEFAULT '{}',
		portrait_id UUID REFERENCES media_files(id) ON DELETE SET NULL,
		updated_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		summary TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		cover_image_id UUID REFERENCES media_files(id) ON DELETE SET NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		live_url VARCHAR(500),
		repo_url VARCHAR(500),
		display_order INTEGER NOT NULL DEFAULT 0,
		published BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		photo_id UUID REFERENCES media_files(id) ON DELETE SET NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		visible BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS contact_messages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS site_settings (
		key VARCHAR(100) PRIMARY KEY,
		value TEXT NOT NULL,
		updated_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		actor_id UUID REFERENCES profiles(id) ON DELETE SET NULL,
		action VARCHAR(100) NOT NULL,
		resource_type VARCHAR(100) NOT NULL,
		resource_id UUID,
		details JSONB NOT NULL DEFAULT '{}',
		ip_address VARCHAR(45) NOT NULL DEFAULT '',
		user_agent VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_published_order ON projects(published, display_order)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_messages_read ON contact_messages(read)`,
	`CREATE INDEX IF NOT EXISTS idx_media_files_uploaded_by ON media_files(uploaded_by)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_actor_id ON audit_logs(actor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_action ON audit_logs(action)`,

	// Seed the feature flags and presentation keys. ON CONFLICT keeps
	// operator-edited values across restarts.
	`INSERT INTO site_settings (key, value) VALUES
		('global_signup_enabled', 'true'),
		('email_verification_required', 'false'),
		('password_min_length', '8'),
		('max_login_attempts', '5'),
		('session_timeout_hours', '168'),
		('site_title', 'Portfolio'),
		('contact_email', '')
	ON CONFLICT (key) DO NOTHING`,

	`INSERT INTO hero_content (id) VALUES (TRUE) ON CONFLICT (id) DO NOTHING`,
	`INSERT INTO about_content (id) VALUES (TRUE) ON CONFLICT (id) DO NOTHING`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
