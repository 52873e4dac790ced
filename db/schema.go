package db

import (
	"database/sql"
	"fmt"
)

const Schema = `
-- Create users table
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(50),
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Create refresh_tokens table
CREATE TABLE IF NOT EXISTS refresh_tokens (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL,
    token VARCHAR(255) UNIQUE NOT NULL,
    expires_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

-- Create audio_lessons table
CREATE TABLE IF NOT EXISTS audio_lessons (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    head_title VARCHAR(255),
    description TEXT,
    category VARCHAR(50),
    tags TEXT[] NOT NULL DEFAULT '{}',
    sections JSONB NOT NULL DEFAULT '[]',
    english_audio JSONB,
    hindi_audio JSONB,
    english_transcription TEXT,
    hindi_transcription TEXT,
    easy_english_transcription TEXT,
    easy_hindi_transcription TEXT,
    uploaded_by INTEGER REFERENCES users(id) ON DELETE SET NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    audio_url TEXT,
    file_name TEXT,
    file_size BIGINT,
    duration INTEGER,
    transcript TEXT,
    language VARCHAR(50),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_audio_lessons_title ON audio_lessons (title);
CREATE INDEX IF NOT EXISTS idx_audio_lessons_category ON audio_lessons (category);
CREATE INDEX IF NOT EXISTS idx_audio_lessons_is_active ON audio_lessons (is_active);
CREATE INDEX IF NOT EXISTS idx_audio_lessons_created_at ON audio_lessons (created_at DESC);
`

// InitSchema initializes the database schema
func InitSchema(database *sql.DB) error {
	_, err := database.Exec(Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
