package catalog

import "errors"

var (
	// ErrMedicineNotFound is returned when the referenced medicine does not exist.
	ErrMedicineNotFound = errors.New("medicine not found")
	// ErrCompanyNotFound is returned when the acting company id does not
	// resolve to an existing pharmaceutical company.
	ErrCompanyNotFound = errors.New("pharmaceutical company not found")
)

// ValidationError reports a malformed request, typically a blank required field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// OwnershipError reports an attempted mutation of a record the acting
// company does not own. SystemOwned distinguishes "belongs to the
// application" from "belongs to another company".
type OwnershipError struct {
	SystemOwned bool
	Message     string
}

func (e *OwnershipError) Error() string {
	return e.Message
}

// ConflictError reports a name collision under the deduplication invariant.
// Verdict says which partition the collision falls into.
type ConflictError struct {
	Verdict Verdict
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
