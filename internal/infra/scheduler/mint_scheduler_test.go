package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
)

type fakeMintCommands struct {
	runs atomic.Int64
}

func (f *fakeMintCommands) ProcessPendingMints(ctx context.Context) (commands.MintRunSummary, error) {
	f.runs.Add(1)
	return commands.MintRunSummary{}, nil
}

type fakeConfirmationCommands struct {
	runs atomic.Int64
}

func (f *fakeConfirmationCommands) ConfirmFiatPayment(ctx context.Context, providerOrderID, providerRef string) error {
	return nil
}

func (f *fakeConfirmationCommands) ReconcilePending(ctx context.Context) (int, error) {
	f.runs.Add(1)
	return 0, nil
}

func newTestScheduler(mint *fakeMintCommands, confirm *fakeConfirmationCommands, interval time.Duration) *MintScheduler {
	return NewMintScheduler(mint, confirm, config.IssuanceConfig{
		MintTickInterval: interval,
		MintTickBudget:   time.Second,
	})
}

func TestMintScheduler_TicksBothTasks(t *testing.T) {
	mint := &fakeMintCommands{}
	confirm := &fakeConfirmationCommands{}
	s := newTestScheduler(mint, confirm, 20*time.Millisecond)

	s.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	s.Stop()

	// Immediate tick plus at least two interval ticks.
	assert.GreaterOrEqual(t, mint.runs.Load(), int64(3))
	assert.GreaterOrEqual(t, confirm.runs.Load(), int64(3))
}

func TestMintScheduler_StopIsIdempotent(t *testing.T) {
	mint := &fakeMintCommands{}
	confirm := &fakeConfirmationCommands{}
	s := newTestScheduler(mint, confirm, time.Hour)

	s.Start(context.Background())
	s.Stop()

	assert.NotPanics(t, func() { s.Stop() })
	assert.EqualValues(t, 1, mint.runs.Load())
}

func TestMintScheduler_StopsOnContextCancel(t *testing.T) {
	mint := &fakeMintCommands{}
	confirm := &fakeConfirmationCommands{}
	s := newTestScheduler(mint, confirm, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()
	time.Sleep(30 * time.Millisecond)

	runsAfterCancel := mint.runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, runsAfterCancel, mint.runs.Load())
}
