package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentTransaction records a verified gateway transaction and the plan
// it purchased. RawPayload keeps the gateway's verification response for
// reconciliation.
type PaymentTransaction struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccountID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	TxRef         string         `gorm:"type:text;not null;uniqueIndex" json:"tx_ref"`
	TransactionID string         `gorm:"type:text" json:"transaction_id"`
	Amount        float64        `gorm:"not null;default:0" json:"amount"`
	Currency      string         `gorm:"type:text;default:'NGN'" json:"currency"`
	Plan          Plan           `gorm:"type:text;not null" json:"plan"`
	Status        string         `gorm:"type:text;not null" json:"status"`
	RawPayload    datatypes.JSON `gorm:"type:jsonb" json:"raw_payload,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Relationship
	Account Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

// BeforeCreate sets UUID before creating
func (p *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
