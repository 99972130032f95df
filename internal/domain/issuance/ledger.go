// Package issuance models the per-UTC-day budget against which every mint is
// reserved before submission and committed or released afterwards. The row
// itself is mutated only through the repository's single-statement operations;
// this package holds the value types and pure arithmetic those operations obey.
package issuance

import (
	"errors"
	"time"
)

var ErrCapExceeded = errors.New("daily issuance cap exceeded")

// DayKey is a UTC calendar day in YYYY-MM-DD form, the ledger's primary key.
type DayKey string

func DayOf(t time.Time) DayKey {
	return DayKey(t.UTC().Format("2006-01-02"))
}

func (d DayKey) String() string {
	return string(d)
}

// LedgerEntry is a snapshot of one day's budget row.
type LedgerEntry struct {
	Day         DayKey
	CapTZS      int64
	ReservedTZS int64
	IssuedTZS   int64
}

// Available returns the headroom left for new reservations.
func (e LedgerEntry) Available() int64 {
	remaining := e.CapTZS - e.ReservedTZS - e.IssuedTZS
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanReserve mirrors the repository's conditional reserve: the post-increment
// sum of reserved and issued must not exceed the cap.
func (e LedgerEntry) CanReserve(amount int64) bool {
	return amount > 0 && e.ReservedTZS+e.IssuedTZS+amount <= e.CapTZS
}

// Utilization is issued+reserved over cap, for the oversight surface.
func (e LedgerEntry) Utilization() float64 {
	if e.CapTZS == 0 {
		return 0
	}
	return float64(e.ReservedTZS+e.IssuedTZS) / float64(e.CapTZS)
}
