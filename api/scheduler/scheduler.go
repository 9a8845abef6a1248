// Package scheduler runs the periodic jobs that keep case lifecycle state
// honest: time-bounded punishments (timeouts, temp bans) are deactivated once
// their expiry passes, so the active-punishment queries never have to trust a
// stale flag alone.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/modkeeper/mod-case-api/databases"
)

// Scheduler handles the periodic background jobs for the case store
type Scheduler struct {
	cron   *cron.Cron
	CaseDB databases.CaseDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(caseDB databases.CaseDatabase) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		CaseDB: caseDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// sweep expired punishments every minute
	_, err := s.cron.AddFunc("* * * * *", s.sweepExpiredPunishments)
	if err != nil {
		zap.S().Errorw("failed to register expiry sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("case scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("case scheduler stopped")
}

func (s *Scheduler) sweepExpiredPunishments() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	modified, err := s.CaseDB.DeactivateExpired(ctx, time.Now())
	if err != nil {
		zap.S().Errorw("expiry sweep failed", "error", err)
		return
	}
	if modified > 0 {
		zap.S().Infow("deactivated expired punishments", "count", modified)
	}
}
