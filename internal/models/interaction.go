package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interaction is one customer message and the AI reply sent for it.
// Rows are written by the inbound message path and read-only everywhere else.
type Interaction struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccountID    uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	UserMessage  string    `gorm:"type:text;not null" json:"user_message"`
	AIResponse   string    `gorm:"type:text" json:"ai_response"`
	LanguageUsed Language  `gorm:"type:text;default:'en'" json:"language_used"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationship
	Account Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Interaction) TableName() string {
	return "interactions"
}

// BeforeCreate sets UUID before creating
func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
