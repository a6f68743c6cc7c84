package campaign

import (
	"strings"
	"time"
)

// CheckContribution validates a contribution against campaign state and the
// caller-supplied clock reading.
//
// The amount check runs before any state check so a non-positive amount is
// rejected the same way regardless of campaign status. A contribution at
// exactly the deadline counts as ended.
func CheckContribution(c Campaign, contributor string, amount int64, now time.Time) error {
	if amount <= 0 {
		return ErrAmountInvalid
	}
	if strings.TrimSpace(contributor) == "" {
		return ErrContributorMissing
	}
	if c.Status != StatusOpen {
		return ErrAlreadyFinalized
	}
	if !now.Before(c.Deadline) {
		return ErrEnded
	}
	return nil
}

// DecideFinalize validates a finalize attempt and returns the terminal status
// the campaign must transition to: successful when the goal was met or
// exceeded, failed otherwise.
//
// Finalizing at exactly the deadline is allowed.
func DecideFinalize(c Campaign, caller string, now time.Time) (Status, error) {
	if caller != c.Creator {
		return StatusUnspecified, ErrUnauthorized
	}
	if c.Status != StatusOpen {
		return StatusUnspecified, ErrAlreadyFinalized
	}
	if now.Before(c.Deadline) {
		return StatusUnspecified, ErrTooEarly
	}
	if c.TotalRaised >= c.Goal {
		return StatusFinalizedSuccessful, nil
	}
	return StatusFinalizedFailed, nil
}

// CheckWithdraw validates that the campaign state permits individual refunds.
// Only campaigns finalized as failed support withdrawals.
func CheckWithdraw(c Campaign) error {
	switch c.Status {
	case StatusFinalizedFailed:
		return nil
	case StatusFinalizedSuccessful:
		return ErrSucceeded
	default:
		return ErrNotFinalized
	}
}
