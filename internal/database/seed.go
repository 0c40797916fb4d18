// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
)

// SeedInitialData creates the default staff account and the base taxonomy
// (categories, seasons, materials, tags) when they do not exist yet.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	// Create default staff user
	var staffCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleStaff).Count(&staffCount)

	if staffCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@example.com",
			Role:     models.UserRoleStaff,
			Status:   models.UserStatusActive,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logrus.Info("Default staff user created successfully")
	}

	categories := []models.Category{
		{Name: "Tops", Description: "Shirts, blouses and other tops"},
		{Name: "Pants", Description: "Trousers, jeans and other pants"},
		{Name: "Skirts", Description: "Skirts of all lengths"},
		{Name: "Outerwear", Description: "Coats, jackets and outer layers"},
		{Name: "Underwear", Description: "Underwear and loungewear"},
		{Name: "Accessories", Description: "Bags, belts and other accessories"},
	}
	for _, c := range categories {
		var count int64
		db.Model(&models.Category{}).Where("name = ?", c.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&c).Error; err != nil {
				logrus.WithError(err).Warnf("Failed to seed category %s", c.Name)
			}
		}
	}

	seasons := []models.Season{
		{Name: "Spring", Description: "Spring collection"},
		{Name: "Summer", Description: "Summer collection"},
		{Name: "Autumn", Description: "Autumn collection"},
		{Name: "Winter", Description: "Winter collection"},
		{Name: "All-Season", Description: "Wearable year-round"},
	}
	for _, s := range seasons {
		var count int64
		db.Model(&models.Season{}).Where("name = ?", s.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&s).Error; err != nil {
				logrus.WithError(err).Warnf("Failed to seed season %s", s.Name)
			}
		}
	}

	materials := []models.Material{
		{Name: "Cotton", Description: "Natural cotton fabric"},
		{Name: "Silk", Description: "Natural silk fabric"},
		{Name: "Wool", Description: "Natural wool fabric"},
		{Name: "Polyester", Description: "Synthetic polyester fabric"},
		{Name: "Nylon", Description: "Synthetic nylon fabric"},
		{Name: "Denim", Description: "Denim fabric"},
		{Name: "Knit", Description: "Knitted fabric"},
		{Name: "Lace", Description: "Lace fabric"},
	}
	for _, m := range materials {
		var count int64
		db.Model(&models.Material{}).Where("name = ?", m.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&m).Error; err != nil {
				logrus.WithError(err).Warnf("Failed to seed material %s", m.Name)
			}
		}
	}

	tags := []models.Tag{
		{Name: "Fashion", Color: "#FF6B6B"},
		{Name: "Classic", Color: "#4ECDC4"},
		{Name: "Casual", Color: "#45B7D1"},
		{Name: "Business", Color: "#96CEB4"},
		{Name: "Sport", Color: "#FFEAA7"},
		{Name: "Elegant", Color: "#DDA0DD"},
		{Name: "Cute", Color: "#FFB6C1"},
		{Name: "Retro", Color: "#DEB887"},
		{Name: "Minimalist", Color: "#F0F8FF"},
		{Name: "Luxury", Color: "#FFD700"},
	}
	for _, t := range tags {
		var count int64
		db.Model(&models.Tag{}).Where("name = ?", t.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&t).Error; err != nil {
				logrus.WithError(err).Warnf("Failed to seed tag %s", t.Name)
			}
		}
	}

	logrus.Info("Initial data seeding completed")
	return nil
}
