// Command seedadmin inserts the initial admin account when it does not
// exist yet. Run it once against a fresh database:
//
//	go run ./scripts/seedadmin
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	connStr := os.Getenv("DB_URL")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "lostfound_db"),
			getEnv("DB_SSL_MODE", "disable"))
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("✅ Successfully connected to database")

	email := getEnv("ADMIN_EMAIL", "admin@lostandfound.com")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		log.Fatal("Failed to check for existing admin:", err)
	}
	if count > 0 {
		log.Println("Admin user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	_, err = db.Exec(`INSERT INTO users
		(name, email, password_hash, role, phone, location_address, location_city, created_at, updated_at)
		VALUES ($1, $2, $3, 'admin', $4, $5, $6, NOW(), NOW())`,
		"Admin User", email, string(hash), "1234567890", "Admin Office", "Admin City")
	if err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("✅ Admin user created successfully: %s", email)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
