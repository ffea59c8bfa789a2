package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/odiabiz/odiabiz-api/internal/models"
)

type AccountRepo interface {
	Insert(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByNumber(number string) (*models.Account, error)
	ListRecent(limit int) ([]models.Account, error)
	UpgradePlan(id uuid.UUID, plan models.Plan) error
	DecrementTrial(id uuid.UUID) error
	TouchLastActive(id uuid.UUID) error
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepo {
	return &accountRepo{db: db}
}

// Insert creates the account row. A duplicate WhatsApp number is reported
// as ErrConflict so the registration layer can show "already registered".
func (r *accountRepo) Insert(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *accountRepo) GetByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetByNumber retrieves an account by its canonical WhatsApp number
func (r *accountRepo) GetByNumber(number string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("whatsapp_number = ?", number).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ListRecent retrieves the most recently registered accounts
func (r *accountRepo) ListRecent(limit int) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Order("created_at DESC").Limit(limit).Find(&accounts).Error
	return accounts, err
}

// UpgradePlan moves the account to a paid plan after payment confirmation
func (r *accountRepo) UpgradePlan(id uuid.UUID, plan models.Plan) error {
	result := r.db.Model(&models.Account{}).Where("id = ?", id).
		Update("plan", plan)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementTrial consumes one trial message. The guard keeps the counter
// from going negative under concurrent webhook deliveries.
func (r *accountRepo) DecrementTrial(id uuid.UUID) error {
	return r.db.Exec(`
		UPDATE accounts
		SET trial_remaining = trial_remaining - 1
		WHERE id = ? AND trial_remaining > 0
	`, id).Error
}

// TouchLastActive stamps the account's last_active to now
func (r *accountRepo) TouchLastActive(id uuid.UUID) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).
		Update("last_active", time.Now()).Error
}
