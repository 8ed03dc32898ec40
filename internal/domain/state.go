package domain

// DraftState is the lifecycle position of an assignment session.
//
// Draft and Failed accept edits; Validating and Submitting are transient
// while a submit runs; Committed is terminal. A Failed session re-enters
// Draft on the next user edit.
type DraftState string

const (
	StateDraft      DraftState = "DRAFT"
	StateValidating DraftState = "VALIDATING"
	StateSubmitting DraftState = "SUBMITTING"
	StateCommitted  DraftState = "COMMITTED"
	StateFailed     DraftState = "FAILED"
)
