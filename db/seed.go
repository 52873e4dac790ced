package db

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the initial admin account when one does not exist
// yet. Safe to run on every boot.
func SeedAdmin(database *sql.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := database.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return fmt.Errorf("error checking admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	_, err = database.Exec(
		`INSERT INTO users (username, email, password_hash, is_admin) VALUES ($1, $2, $3, TRUE)`,
		"admin", email, string(hash),
	)
	if err != nil {
		return fmt.Errorf("error seeding admin account: %w", err)
	}
	return nil
}
