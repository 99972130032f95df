package issuance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOf(t *testing.T) {
	// 23:30 in UTC+3 is 20:30 UTC on the same day
	eat := time.FixedZone("EAT", 3*60*60)
	assert.Equal(t, DayKey("2026-01-15"), DayOf(time.Date(2026, 1, 15, 23, 30, 0, 0, eat)))

	// 01:30 in UTC+3 is still the previous UTC day
	assert.Equal(t, DayKey("2026-01-14"), DayOf(time.Date(2026, 1, 15, 1, 30, 0, 0, eat)))
}

func TestLedgerEntryCanReserve(t *testing.T) {
	entry := LedgerEntry{Day: "2026-01-15", CapTZS: 100_000_000, ReservedTZS: 500, IssuedTZS: 99_999_000}

	assert.True(t, entry.CanReserve(500))
	assert.False(t, entry.CanReserve(501))
	assert.False(t, entry.CanReserve(1000))
	assert.False(t, entry.CanReserve(0))
	assert.False(t, entry.CanReserve(-1))
}

func TestLedgerEntryAvailable(t *testing.T) {
	entry := LedgerEntry{CapTZS: 1000, ReservedTZS: 300, IssuedTZS: 200}
	assert.Equal(t, int64(500), entry.Available())

	over := LedgerEntry{CapTZS: 1000, ReservedTZS: 800, IssuedTZS: 300}
	assert.Equal(t, int64(0), over.Available())
}

func TestLedgerEntryUtilization(t *testing.T) {
	entry := LedgerEntry{CapTZS: 1000, ReservedTZS: 250, IssuedTZS: 250}
	assert.InDelta(t, 0.5, entry.Utilization(), 1e-9)

	assert.Zero(t, LedgerEntry{}.Utilization())
}
