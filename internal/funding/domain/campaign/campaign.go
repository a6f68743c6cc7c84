package campaign

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/fundraising.space/internal/platform/errors"
)

// Status describes the lifecycle of a fundraising campaign.
type Status int

const (
	// StatusUnspecified represents an invalid status value.
	StatusUnspecified Status = iota
	// StatusOpen indicates the campaign is accepting contributions.
	StatusOpen
	// StatusFinalizedSuccessful indicates the campaign met its goal and the
	// raised funds were released to the creator.
	StatusFinalizedSuccessful
	// StatusFinalizedFailed indicates the campaign missed its goal and
	// contributors may reclaim their stakes.
	StatusFinalizedFailed
)

var statusLabels = map[Status]string{
	StatusUnspecified:         "unspecified",
	StatusOpen:                "open",
	StatusFinalizedSuccessful: "finalized_successful",
	StatusFinalizedFailed:     "finalized_failed",
}

// String returns the storage/wire label for the status.
func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "unspecified"
}

// StatusFromLabel reverses String for persisted status labels.
func StatusFromLabel(label string) Status {
	for status, candidate := range statusLabels {
		if candidate == label {
			return status
		}
	}
	return StatusUnspecified
}

// Finalized reports whether the status is one of the two terminal states.
func (s Status) Finalized() bool {
	return s == StatusFinalizedSuccessful || s == StatusFinalizedFailed
}

var (
	// ErrGoalInvalid indicates a non-positive funding goal.
	ErrGoalInvalid = apperrors.New(apperrors.CodeCampaignGoalInvalid, "goal must be greater than zero")
	// ErrDurationInvalid indicates a non-positive campaign duration.
	ErrDurationInvalid = apperrors.New(apperrors.CodeCampaignDurationInvalid, "duration must be greater than zero")
	// ErrCreatorMissing indicates a missing creator identity.
	ErrCreatorMissing = apperrors.New(apperrors.CodeCampaignCreatorMissing, "creator is required")
	// ErrAmountInvalid indicates a non-positive contribution amount.
	ErrAmountInvalid = apperrors.New(apperrors.CodeContributionAmountInvalid, "amount must be greater than zero")
	// ErrContributorMissing indicates a missing contributor identity.
	ErrContributorMissing = apperrors.New(apperrors.CodeContributorMissing, "contributor is required")
	// ErrEnded indicates a contribution arriving at or past the deadline.
	ErrEnded = apperrors.New(apperrors.CodeCampaignEnded, "campaign deadline has passed")
	// ErrAlreadyFinalized indicates a mutating call against a finalized campaign.
	ErrAlreadyFinalized = apperrors.New(apperrors.CodeCampaignAlreadyFinalized, "campaign is already finalized")
	// ErrUnauthorized indicates a finalize attempt by a non-creator.
	ErrUnauthorized = apperrors.New(apperrors.CodeFinalizeUnauthorized, "only the campaign creator may finalize")
	// ErrTooEarly indicates a finalize attempt before the deadline.
	ErrTooEarly = apperrors.New(apperrors.CodeFinalizeTooEarly, "campaign deadline has not passed yet")
	// ErrNotFinalized indicates a withdraw attempt while the campaign is open.
	ErrNotFinalized = apperrors.New(apperrors.CodeCampaignNotFinalized, "campaign is not finalized")
	// ErrSucceeded indicates a withdraw attempt after a successful finalize.
	ErrSucceeded = apperrors.New(apperrors.CodeCampaignSucceeded, "campaign succeeded; contributions are not refundable")
	// ErrNothingToWithdraw indicates a withdraw attempt with no residual balance.
	ErrNothingToWithdraw = apperrors.New(apperrors.CodeNothingToWithdraw, "no contribution to withdraw")
)

// Campaign represents one time-boxed fundraising effort.
//
// TotalRaised always equals the sum of the live ledger entries for the
// campaign: contributions increment both together and withdrawals decrement
// both together.
type Campaign struct {
	// ID is the sequential campaign identifier, assigned by storage from 0.
	ID uint64
	// Creator is the identity that registered the campaign and the sole
	// authority allowed to finalize it.
	Creator string
	// Goal is the funding target in minor units. Immutable after creation.
	Goal int64
	// Deadline is the absolute cutoff for contributions, computed at
	// creation as creation time + duration. Immutable after creation.
	Deadline time.Time
	// TotalRaised is the sum of live (non-withdrawn) contributions.
	TotalRaised int64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateInput describes the values needed to register a campaign.
type CreateInput struct {
	Creator      string
	Goal         int64
	DurationDays int
}

// New validates input and builds an Open campaign with its deadline set from
// the caller-supplied clock reading. The ID is assigned later by storage.
func New(input CreateInput, now time.Time) (Campaign, error) {
	input.Creator = strings.TrimSpace(input.Creator)
	if input.Creator == "" {
		return Campaign{}, ErrCreatorMissing
	}
	if input.Goal <= 0 {
		return Campaign{}, ErrGoalInvalid
	}
	if input.DurationDays <= 0 {
		return Campaign{}, ErrDurationInvalid
	}

	createdAt := now.UTC()
	return Campaign{
		Creator:     input.Creator,
		Goal:        input.Goal,
		Deadline:    createdAt.Add(time.Duration(input.DurationDays) * 24 * time.Hour),
		TotalRaised: 0,
		Status:      StatusOpen,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}
