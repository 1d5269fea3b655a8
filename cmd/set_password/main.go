// Command set_password creates or resets the admin credential record.
//
// usage: DB_DSN=... go run ./cmd/set_password --password <new password>
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"aihub/models"
)

func main() {
	password := flag.String("password", "", "new plaintext admin password (min 6 chars)")
	flag.Parse()
	if *password == "" {
		log.Fatal("--password is required")
	}
	if len(*password) < 6 {
		log.Fatal("password too short (min 6)")
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}
	var rec models.AdminConfig
	err = db.Where("id = ?", models.AdminConfigID).First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = models.AdminConfig{ID: models.AdminConfigID, PasswordHash: hash}
		if err := db.Create(&rec).Error; err != nil {
			log.Fatalf("create admin config: %v", err)
		}
		fmt.Println("admin credential record created")
	case err != nil:
		log.Fatalf("query admin config: %v", err)
	default:
		// clear the audit token alongside the hash
		if err := db.Model(&rec).Updates(map[string]any{
			"password_hash": hash,
			"session_token": "",
		}).Error; err != nil {
			log.Fatalf("update failed: %v", err)
		}
		fmt.Println("admin password reset")
	}
}
