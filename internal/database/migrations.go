package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
)

// SystemAdminID identifies the account created on first start.
const SystemAdminID = "00000000-0000-0000-0000-000000000001"

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Notification{},
	); err != nil {
		return err
	}
	return backfillUserSearchKeys(db)
}

// backfillUserSearchKeys fills search keys for rows written before the column existed.
func backfillUserSearchKeys(db *gorm.DB) error {
	var users []models.User
	if err := db.Select("id", "full_name", "email").
		Where("search_key IS NULL OR search_key = ''").
		Find(&users).Error; err != nil {
		return fmt.Errorf("load users without search key: %w", err)
	}
	for _, user := range users {
		key := models.UserSearchKey(user.FullName, user.Email)
		if err := db.Model(&models.User{}).
			Where("id = ?", user.ID).
			UpdateColumn("search_key", key).Error; err != nil {
			return fmt.Errorf("backfill search key for user %s: %w", user.ID, err)
		}
	}
	return nil
}

// SeedData ensures the system administrator account exists.
func SeedData(db *gorm.DB) error {
	admin := models.User{
		BaseModel: models.BaseModel{ID: SystemAdminID},
		Email:     "admin@medres.local",
		FullName:  "System Administrator",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}

	return db.Where(models.User{BaseModel: models.BaseModel{ID: admin.ID}}).
		Attrs(admin).
		FirstOrCreate(&models.User{}).Error
}
