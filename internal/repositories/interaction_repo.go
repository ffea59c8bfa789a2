package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/odiabiz/odiabiz-api/internal/models"
)

type InteractionRepo interface {
	Log(interaction *models.Interaction) error
	ListRecent(accountID uuid.UUID, limit int) ([]models.Interaction, error)
	CountByAccount(accountID uuid.UUID) (int64, error)
	ActiveAccountIDs(since time.Time) ([]uuid.UUID, error)
}

type interactionRepo struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return &interactionRepo{db: db}
}

// Log inserts one customer message / AI reply pair
func (r *interactionRepo) Log(interaction *models.Interaction) error {
	return r.db.Create(interaction).Error
}

// ListRecent retrieves the newest interactions for an account,
// descending by creation time
func (r *interactionRepo) ListRecent(accountID uuid.UUID, limit int) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&interactions).Error
	return interactions, err
}

// CountByAccount returns the true historical interaction count. The
// dashboard does not use this; it reports the page-limited window size.
func (r *interactionRepo) CountByAccount(accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Interaction{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// ActiveAccountIDs returns accounts with at least one interaction since
// the given time. Used by the last-active refresh job.
func (r *interactionRepo) ActiveAccountIDs(since time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Interaction{}).
		Where("created_at >= ?", since).
		Distinct("account_id").
		Pluck("account_id", &ids).Error
	return ids, err
}
