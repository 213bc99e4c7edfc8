package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a feed entry addressed to a single user. Title and Message
// are stored exactly as the appointment service wrote them, in English.
type Notification struct {
	BaseModel

	UserID         string         `gorm:"type:uuid;index;not null" json:"user_id"`
	Category       string         `gorm:"type:varchar(32);index;not null" json:"category"`
	Priority       string         `gorm:"type:varchar(16);default:'medium'" json:"priority"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Message        string         `gorm:"type:text" json:"message"`
	ActionRequired bool           `gorm:"default:false" json:"action_required"`
	Metadata       datatypes.JSON `json:"metadata"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`
}
