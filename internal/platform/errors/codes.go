// Package errors provides structured error handling for the funding service.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Campaign creation errors
	CodeCampaignGoalInvalid     Code = "CAMPAIGN_GOAL_INVALID"
	CodeCampaignDurationInvalid Code = "CAMPAIGN_DURATION_INVALID"
	CodeCampaignCreatorMissing  Code = "CAMPAIGN_CREATOR_MISSING"

	// Contribution errors
	CodeContributionAmountInvalid Code = "CONTRIBUTION_AMOUNT_INVALID"
	CodeContributorMissing        Code = "CONTRIBUTOR_MISSING"
	CodeCampaignEnded             Code = "CAMPAIGN_ENDED"

	// Finalization errors
	CodeFinalizeUnauthorized     Code = "FINALIZE_UNAUTHORIZED"
	CodeFinalizeTooEarly         Code = "FINALIZE_TOO_EARLY"
	CodeCampaignAlreadyFinalized Code = "CAMPAIGN_ALREADY_FINALIZED"

	// Withdrawal errors
	CodeCampaignNotFinalized Code = "CAMPAIGN_NOT_FINALIZED"
	CodeCampaignSucceeded    Code = "CAMPAIGN_SUCCEEDED"
	CodeNothingToWithdraw    Code = "NOTHING_TO_WITHDRAW"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Payout errors
	CodePayoutFailed Code = "PAYOUT_FAILED"

	// Auth errors
	CodeAccessTokenInvalid Code = "ACCESS_TOKEN_INVALID"

	// Transport errors
	CodeRequestBodyInvalid Code = "REQUEST_BODY_INVALID"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input shape
	case CodeCampaignGoalInvalid,
		CodeCampaignDurationInvalid,
		CodeCampaignCreatorMissing,
		CodeContributionAmountInvalid,
		CodeContributorMissing,
		CodeRequestBodyInvalid:
		return http.StatusBadRequest

	// Unauthorized - missing or invalid caller identity
	case CodeAccessTokenInvalid:
		return http.StatusUnauthorized

	// Forbidden - caller identity is valid but lacks authority
	case CodeFinalizeUnauthorized:
		return http.StatusForbidden

	// Not found - unknown campaign id
	case CodeNotFound:
		return http.StatusNotFound

	// Conflict - deadline gating and state-machine violations
	case CodeCampaignEnded,
		CodeFinalizeTooEarly,
		CodeCampaignAlreadyFinalized,
		CodeCampaignNotFinalized,
		CodeCampaignSucceeded,
		CodeNothingToWithdraw:
		return http.StatusConflict

	// Bad gateway - the downstream value transfer failed
	case CodePayoutFailed:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
