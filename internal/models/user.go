package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Preference keys recognized inside the jsonb preferences document.
// Anything else present in the column is preserved verbatim.
const (
	PrefProfileVisibility  = "profileVisibility"
	PrefShowPasteCount     = "showPasteCount"
	PrefShowPublicPastes   = "showPublicPastes"
	PrefEmailNotifications = "emailNotifications"
	PrefPushNotifications  = "pushNotifications"
	PrefWeeklySummary      = "weeklySummary"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// UserAccount is the platform user record. Registration creates it elsewhere;
// this service only updates profile, credential, and preference fields.
type UserAccount struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username      string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash  string         `gorm:"not null" json:"-"`
	Bio           *string        `gorm:"size:100" json:"bio,omitempty"`
	Website       *string        `gorm:"size:255" json:"website,omitempty"`
	Location      *string        `gorm:"size:100" json:"location,omitempty"`
	AvatarPath    *string        `gorm:"size:255" json:"avatar_path,omitempty"`
	Preferences   datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"preferences"`
	AllowMessages bool           `gorm:"default:true" json:"allow_messages"`
	IsAdmin       bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (UserAccount) TableName() string {
	return "users"
}
