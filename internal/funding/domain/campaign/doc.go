// Package campaign holds the pure domain model for fundraising campaigns:
// the lifecycle state machine (Open -> FinalizedSuccessful | FinalizedFailed)
// and the decision functions the lifecycle engine evaluates before touching
// storage. Every time-gated decision takes an explicit clock reading so
// boundary conditions are deterministic under test.
package campaign
