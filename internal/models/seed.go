package models

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	console "stockroom/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("SEEDER")

// CreateAdminFromEnv seeds an initial active ADMIN employee so a fresh
// deployment has someone who can approve tasks and manage warehouses.
func CreateAdminFromEnv(db *gorm.DB) error {
	var count int64
	db.Model(&Employee{}).Where("role = ?", RoleAdmin).Count(&count)
	log.Info("Admin employee count: %d", count)
	if count > 0 {
		return nil
	}

	username, ok := os.LookupEnv("ADMIN_USERNAME")
	if !ok {
		return fmt.Errorf("ADMIN_USERNAME not set")
	}

	email, ok := os.LookupEnv("ADMIN_EMAIL")
	if !ok {
		return fmt.Errorf("ADMIN_EMAIL not set")
	}

	password, ok := os.LookupEnv("ADMIN_PASSWORD")
	if !ok {
		return fmt.Errorf("ADMIN_PASSWORD not set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	admin := Employee{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Active:   true,
		Role:     RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin employee: %v", err)
	}

	return nil
}
