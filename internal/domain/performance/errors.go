package performance

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrOverlap     = errors.New("evaluation period overlaps an existing period")
	ErrDuplicate   = errors.New("evaluation already exists for employee, period and type")
	ErrNotFound    = errors.New("record not found")
	ErrComputation = errors.New("achievement cannot be computed")
	ErrPeriodInUse = errors.New("evaluation period is referenced by goals")
)

type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every offending field found in one pass.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(field, reason string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

func invalid(field, reason string) error {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Reason: reason}}}
}

type OverlapError struct {
	PeriodID string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrOverlap.Error(), e.PeriodID)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlap
}

type DuplicateError struct {
	EvaluationID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrDuplicate.Error(), e.EvaluationID)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// Store-level constraint signals. The services turn these into the typed
// errors above once they know which row is in the way.
var (
	errOverlapConstraint   = errors.New("evaluation period exclusion constraint violated")
	errDuplicateConstraint = errors.New("evaluation uniqueness constraint violated")
	errUnknownPeriod       = errors.New("referenced evaluation period does not exist")
)
