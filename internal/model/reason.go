package model

import "fmt"

// Reason is the archive reason tag. The set is closed.
type Reason string

// Archive reasons.
const (
	ReasonExpired  Reason = "expired"
	ReasonUnsolved Reason = "unsolved"
	ReasonDonate   Reason = "donate"
)

// ParseReason converts a wire value into a Reason.
func ParseReason(s string) (Reason, error) {
	switch Reason(s) {
	case ReasonExpired, ReasonUnsolved, ReasonDonate:
		return Reason(s), nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown archive reason %q", s), "reason")
	}
}

// Destination returns the active table a record archived for r is restored to.
// Donated records have no destination.
func (r Reason) Destination() (Table, error) {
	switch r {
	case ReasonExpired:
		return TableFound, nil
	case ReasonUnsolved:
		return TableLost, nil
	case ReasonDonate:
		return "", fmt.Errorf("%w: donated items cannot be restored", ErrConflict)
	default:
		return "", NewValidationError(fmt.Sprintf("unknown archive reason %q", string(r)), "reason")
	}
}

// ArchiveReasonFor returns the only reason a record from t may be archived with.
// Found items expire; lost reports go unsolved.
func ArchiveReasonFor(t Table) Reason {
	if t == TableFound {
		return ReasonExpired
	}
	return ReasonUnsolved
}
