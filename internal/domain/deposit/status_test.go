package deposit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusSubmitted, StatusMintPending},
		{StatusSubmitted, StatusMintRequiresSafe},
		{StatusSubmitted, StatusBankApproved},
		{StatusSubmitted, StatusRejected},
		{StatusSubmitted, StatusCancelled},
		{StatusBankApproved, StatusMintPending},
		{StatusBankApproved, StatusRejected},
		{StatusMintPending, StatusMintProcessing},
		{StatusMintProcessing, StatusMinted},
		{StatusMintProcessing, StatusMintFailed},
		{StatusMintFailed, StatusMintPending},
		{StatusMintRequiresSafe, StatusMinted},
	}
	for _, tr := range allowed {
		assert.True(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	forbidden := []struct {
		from, to Status
	}{
		{StatusMinted, StatusMintPending},
		{StatusRejected, StatusSubmitted},
		{StatusCancelled, StatusMintPending},
		{StatusMintProcessing, StatusSubmitted},
		{StatusMintPending, StatusMinted},
		{StatusMintRequiresSafe, StatusMintProcessing},
		{StatusMintFailed, StatusMinted},
	}
	for _, tr := range forbidden {
		assert.False(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be forbidden", tr.from, tr.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusMinted, StatusRejected, StatusCancelled} {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
		assert.Empty(t, transitions[s])
	}
	for _, s := range []Status{StatusSubmitted, StatusBankApproved, StatusMintPending, StatusMintRequiresSafe, StatusMintProcessing, StatusMintFailed} {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusMintPending.IsValid())
	assert.False(t, Status("unknown").IsValid())
}

func TestConfirmableStatuses(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusSubmitted, StatusBankApproved}, ConfirmableStatuses())
}
