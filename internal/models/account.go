package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrialMessageQuota is the number of free messages a new account starts with.
const TrialMessageQuota = 60

// Account is a registered business on the platform.
type Account struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessName   string     `gorm:"type:text;not null" json:"business_name"`
	WhatsAppNumber string     `gorm:"type:text;not null;uniqueIndex" json:"whatsapp_number"`
	Email          string     `gorm:"type:text" json:"email,omitempty"`
	LanguagePref   Language   `gorm:"type:text;not null;default:'en'" json:"language_pref"`
	Plan           Plan       `gorm:"type:text;not null;default:'trial'" json:"plan"`
	TrialRemaining int        `gorm:"not null;default:60" json:"trial_remaining"`
	BusinessType   string     `gorm:"type:text" json:"business_type"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastActive     *time.Time `json:"last_active,omitempty"`
}

// TableName specifies the table name
func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate sets UUID before creating
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
