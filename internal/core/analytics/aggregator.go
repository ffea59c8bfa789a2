// Package analytics computes the platform-wide counters shown on the
// admin overview.
package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/odiabiz/odiabiz-api/internal/models"
)

// PlatformStats is the admin overview payload.
type PlatformStats struct {
	TotalAccounts     int64   `json:"total_accounts"`
	ActiveAccounts    int64   `json:"active_accounts"` // active in the last 7 days
	MonthInteractions int64   `json:"month_interactions"`
	TotalRevenue      float64 `json:"total_revenue"` // NGN, verified payments
}

type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// PlatformOverview computes all admin counters in one pass.
func (a *Aggregator) PlatformOverview() (*PlatformStats, error) {
	stats := &PlatformStats{}

	if err := a.db.Model(&models.Account{}).Count(&stats.TotalAccounts).Error; err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := a.db.Model(&models.Account{}).
		Where("last_active >= ?", weekAgo).
		Count(&stats.ActiveAccounts).Error; err != nil {
		return nil, fmt.Errorf("count active accounts: %w", err)
	}

	monthStart := startOfMonth(time.Now())
	if err := a.db.Model(&models.Interaction{}).
		Where("created_at >= ?", monthStart).
		Count(&stats.MonthInteractions).Error; err != nil {
		return nil, fmt.Errorf("count month interactions: %w", err)
	}

	// COALESCE keeps an empty table from scanning NULL into the float.
	if err := a.db.Model(&models.PaymentTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", "successful").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	return stats, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
