package config

import (
	"log"
	"os"

	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account when no admin exists yet.
// The password must be rotated through the profile endpoints after first login.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.AdminUser{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	plain := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if plain == "" {
		plain = "changeme123"
		log.Println("⚠️ ADMIN_DEFAULT_PASSWORD not set, using built-in default")
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	admin := &models.AdminUser{
		Username: "admin",
		Email:    "admin@bdmart.com.bd",
		Password: hashed,
		Role:     models.RoleAdmin,
		Status:   models.AdminStatusActive,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Default admin seeded (username: %s)", admin.Username)
	return nil
}
