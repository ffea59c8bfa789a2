// Package jobs runs the service's periodic maintenance.
package jobs

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/odiabiz/odiabiz-api/internal/core/pairing"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
	"github.com/odiabiz/odiabiz-api/internal/shared/utils"
)

// Expired pairing sessions linger this long before the sweeper drops them,
// so the connect screen can still show the EXPIRED state with its
// regenerate button.
const expiredRetention = 10 * time.Minute

type Scheduler struct {
	cron         *cron.Cron
	pairing      *pairing.Manager
	accounts     repositories.AccountRepo
	interactions repositories.InteractionRepo
}

func NewScheduler(pairingMgr *pairing.Manager, accounts repositories.AccountRepo, interactions repositories.InteractionRepo) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		pairing:      pairingMgr,
		accounts:     accounts,
		interactions: interactions,
	}
}

// Start registers and launches the periodic jobs.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 1m", s.sweepPairingSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@hourly", s.refreshLastActive); err != nil {
		return err
	}

	s.cron.Start()
	utils.LogInfo("scheduler started", map[string]interface{}{
		"jobs": 2,
	})
	return nil
}

// Stop halts the schedule; running jobs finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) sweepPairingSessions() {
	s.pairing.SweepExpired(expiredRetention)
}

// refreshLastActive stamps accounts that had interactions in the past day.
func (s *Scheduler) refreshLastActive() {
	ids, err := s.interactions.ActiveAccountIDs(time.Now().AddDate(0, 0, -1))
	if err != nil {
		utils.LogError("active account lookup failed", err, nil)
		return
	}
	for _, id := range ids {
		if err := s.accounts.TouchLastActive(id); err != nil {
			utils.LogError("last_active refresh failed", err, map[string]interface{}{
				"account_id": id,
			})
		}
	}
}
