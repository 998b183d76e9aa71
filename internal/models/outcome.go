package models

// MutationStatus tags the outcome of a protective mutating operation.
type MutationStatus string

const (
	// MutationCompleted means the operation was applied.
	MutationCompleted MutationStatus = "completed"
	// MutationConfirmationRequired means the operation was refused pending
	// an explicit force re-invocation. It is not an error.
	MutationConfirmationRequired MutationStatus = "confirmation_required"
)

// MutationOutcome is the three-way result of data-protective deletions.
// Errors travel separately; a confirmation_required outcome always carries
// a human-readable reason.
type MutationOutcome struct {
	Status MutationStatus `json:"status"`
	Reason string         `json:"reason,omitempty"`
	ID     string         `json:"id,omitempty"`
}

// Completed reports whether the mutation was applied.
func (o *MutationOutcome) Completed() bool {
	return o != nil && o.Status == MutationCompleted
}

// NeedsConfirmation reports whether the caller must re-invoke with force.
func (o *MutationOutcome) NeedsConfirmation() bool {
	return o != nil && o.Status == MutationConfirmationRequired
}
