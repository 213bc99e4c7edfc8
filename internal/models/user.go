package models

import (
	"strings"

	"gorm.io/gorm"
)

// Roles a user can hold.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is an account of the reservation system.
type User struct {
	BaseModel

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone    string `gorm:"type:varchar(32)" json:"phone"`
	Role     string `gorm:"type:varchar(16);index;not null;default:'patient'" json:"role"`

	// Language is the preferred display language, empty for the server default.
	Language string `gorm:"type:varchar(8)" json:"language"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// SearchKey is the lowercased name and email the admin user filter matches on.
	SearchKey string `gorm:"type:varchar(512);index" json:"-"`

	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// BeforeSave refreshes SearchKey. Partial column updates carry neither name
// nor email and leave the stored key alone.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.FullName != "" && u.Email != "" {
		u.SearchKey = UserSearchKey(u.FullName, u.Email)
	}
	return nil
}

// UserSearchKey joins the Unicode-lowercased name and email, one per line.
func UserSearchKey(fullName, email string) string {
	return strings.ToLower(strings.TrimSpace(fullName)) + "\n" + strings.ToLower(strings.TrimSpace(email))
}
