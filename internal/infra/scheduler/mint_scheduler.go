package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/usecase/commands"
)

// MintScheduler drives the issuance pipeline's background work: draining the
// mint queue and sweeping unconfirmed payments. One tick runs both tasks
// sequentially under a shared budget so a slow chain can never stack
// overlapping batches.
type MintScheduler struct {
	mintUC    commands.MintCommands
	confirmUC commands.ConfirmationCommands
	interval  time.Duration
	budget    time.Duration
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func NewMintScheduler(
	mintUC commands.MintCommands,
	confirmUC commands.ConfirmationCommands,
	cfg config.IssuanceConfig,
) *MintScheduler {
	return &MintScheduler{
		mintUC:    mintUC,
		confirmUC: confirmUC,
		interval:  cfg.MintTickInterval,
		budget:    cfg.MintTickBudget,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the tick loop and returns immediately.
func (s *MintScheduler) Start(ctx context.Context) {
	slog.Info("starting mint scheduler", "interval", s.interval, "tick_budget", s.budget)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop shuts the loop down and waits for an in-flight tick to finish. Safe to
// call multiple times.
func (s *MintScheduler) Stop() {
	s.stopOnce.Do(func() {
		slog.Info("stopping mint scheduler")
		close(s.stopChan)
		s.wg.Wait()
		slog.Info("mint scheduler stopped")
	})
}

func (s *MintScheduler) run(ctx context.Context) {
	// First tick immediately so restarts pick up backlog without waiting a
	// full interval.
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("mint scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *MintScheduler) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	start := time.Now()

	summary, err := s.mintUC.ProcessPendingMints(tickCtx)
	if err != nil {
		slog.Error("mint batch aborted",
			"error", err,
			"claimed", summary.Claimed,
			"duration", time.Since(start))
	} else if summary.Claimed > 0 {
		slog.Info("mint batch processed",
			"claimed", summary.Claimed,
			"minted", summary.Minted,
			"failed", summary.Failed,
			"cap_exceeded", summary.CapExceeded,
			"duration", time.Since(start))
	}

	confirmed, err := s.confirmUC.ReconcilePending(tickCtx)
	if err != nil {
		slog.Error("reconciliation sweep failed", "error", err)
	} else if confirmed > 0 {
		slog.Info("reconciliation sweep confirmed payments", "count", confirmed)
	}
}
