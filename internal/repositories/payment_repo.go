package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/odiabiz/odiabiz-api/internal/models"
)

type PaymentRepo interface {
	Record(tx *models.PaymentTransaction) error
	GetByTxRef(txRef string) (*models.PaymentTransaction, error)
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepo {
	return &paymentRepo{db: db}
}

// Record stores a verified transaction. Re-verifying the same tx_ref is a
// no-op rather than an error: gateways redeliver callbacks.
func (r *paymentRepo) Record(tx *models.PaymentTransaction) error {
	err := r.db.Create(tx).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// GetByTxRef retrieves a recorded transaction by its gateway reference
func (r *paymentRepo) GetByTxRef(txRef string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.db.Where("tx_ref = ?", txRef).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}
