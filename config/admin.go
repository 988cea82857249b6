package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// AdminPrincipal is the single process-wide admin identity. There is no user
// table: the dashboard has exactly one account, configured via environment
// variables and fixed from startup to shutdown.
type AdminPrincipal struct {
	Username     string
	PasswordHash string
}

var Admin AdminPrincipal

// LoadAdmin reads ADMIN_USERNAME/ADMIN_PASSWORD and hashes the password in
// memory so the plaintext is never compared directly at login.
func LoadAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, using default credentials")
		password = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("Failed to hash admin password")
	}

	Admin = AdminPrincipal{
		Username:     username,
		PasswordHash: string(hash),
	}
}
