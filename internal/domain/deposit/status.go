package deposit

// Status is the lifecycle state of a deposit request. Transitions are
// monotonic along the graph below; the only backward edge is the explicit
// retry path from StatusMintFailed to StatusMintPending.
type Status string

const (
	StatusSubmitted        Status = "submitted"
	StatusBankApproved     Status = "bank_approved"
	StatusMintPending      Status = "mint_pending"
	StatusMintRequiresSafe Status = "mint_requires_safe"
	StatusMintProcessing   Status = "mint_processing"
	StatusMinted           Status = "minted"
	StatusMintFailed       Status = "mint_failed"
	StatusRejected         Status = "rejected"
	StatusCancelled        Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusSubmitted: {
		StatusBankApproved,
		StatusMintPending,
		StatusMintRequiresSafe,
		StatusRejected,
		StatusCancelled,
	},
	StatusBankApproved: {
		StatusMintPending,
		StatusMintRequiresSafe,
		StatusRejected,
	},
	StatusMintPending:      {StatusMintProcessing},
	StatusMintRequiresSafe: {StatusMinted},
	StatusMintProcessing:   {StatusMinted, StatusMintFailed},
	StatusMintFailed:       {StatusMintPending},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusBankApproved, StatusMintPending, StatusMintRequiresSafe,
		StatusMintProcessing, StatusMinted, StatusMintFailed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the pipeline never revisits this status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusMinted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ConfirmableStatuses are the source states from which a completed fiat
// payment may advance a deposit. The CAS in the repository guards against
// the webhook and poller racing on the same row.
func ConfirmableStatuses() []Status {
	return []Status{StatusSubmitted, StatusBankApproved}
}
