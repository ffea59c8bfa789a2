// Package dashboard assembles the customer dashboard payload: the account
// record plus summary counters over the recent-interaction window.
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/odiabiz/odiabiz-api/internal/core/phone"
	"github.com/odiabiz/odiabiz-api/internal/models"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
	"github.com/odiabiz/odiabiz-api/internal/shared/utils"
)

const (
	// recentWindow caps the interaction fetch. The message counters are
	// window sizes, not historical totals.
	recentWindow = 10

	// averageResponseSeconds is a fixed display value; per-message latency
	// is not persisted.
	averageResponseSeconds = 1.2
)

// ErrNotFound is returned when the account does not exist.
var ErrNotFound = errors.New("account not found")

// Stats are the dashboard counters. TotalMessages and TotalConversations
// are page-limited counts over the fetched window (at most 10).
type Stats struct {
	TotalMessages       int     `json:"total_messages"`
	ThisMonth           int     `json:"this_month"`
	PlanStatus          string  `json:"plan_status"`
	MessagesLeft        int     `json:"messages_left"`
	TotalConversations  int     `json:"total_conversations"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// Data is the full dashboard payload. Partial is set when the interaction
// fetch failed and the counters degrade to an empty window.
type Data struct {
	Account      models.Account       `json:"account"`
	Stats        Stats                `json:"stats"`
	Interactions []models.Interaction `json:"interactions"`
	Partial      bool                 `json:"partial,omitempty"`
}

type Aggregator struct {
	accounts     repositories.AccountRepo
	interactions repositories.InteractionRepo
}

func NewAggregator(accounts repositories.AccountRepo, interactions repositories.InteractionRepo) *Aggregator {
	return &Aggregator{accounts: accounts, interactions: interactions}
}

// Load fetches the account and its recent interactions and computes the
// counters. A missing account is fatal; a failed interaction fetch is not,
// the user still sees their account state.
func (a *Aggregator) Load(accountID uuid.UUID) (*Data, error) {
	account, err := a.accounts.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	partial := false
	interactions, err := a.interactions.ListRecent(accountID, recentWindow)
	if err != nil {
		utils.LogWarn("interaction fetch failed, degrading to empty list", map[string]interface{}{
			"account_id": accountID,
			"error":      err.Error(),
		})
		interactions = []models.Interaction{}
		partial = true
	}
	if interactions == nil {
		interactions = []models.Interaction{}
	}

	// Display copy: mask the number, never leak the full one to the UI.
	view := *account
	view.WhatsAppNumber = phone.MaskForDisplay(account.WhatsAppNumber)

	return &Data{
		Account:      view,
		Stats:        computeStats(account, interactions),
		Interactions: interactions,
		Partial:      partial,
	}, nil
}

func computeStats(account *models.Account, interactions []models.Interaction) Stats {
	currentMonth := time.Now().Month()

	thisMonth := 0
	for _, it := range interactions {
		// Calendar-month component match, not a rolling 30-day window.
		if it.CreatedAt.Month() == currentMonth {
			thisMonth++
		}
	}

	return Stats{
		TotalMessages:       len(interactions),
		ThisMonth:           thisMonth,
		PlanStatus:          string(account.Plan),
		MessagesLeft:        account.TrialRemaining,
		TotalConversations:  len(interactions),
		AverageResponseTime: averageResponseSeconds,
	}
}
