package commit

import (
	"fmt"
	"strings"
)

// InternalConsistencyError marks a condition validation should have made
// unreachable, such as an activity referencing a temp id absent from the
// in-progress map. It aborts the commit the same way a repository failure
// does.
type InternalConsistencyError struct {
	Message string
}

func (e *InternalConsistencyError) Error() string {
	return "internal consistency: " + e.Message
}

type RollbackStatus string

const (
	RollbackComplete RollbackStatus = "complete"
	RollbackPartial  RollbackStatus = "partial"
)

// RollbackFailure records one compensating delete that failed, leaving an
// orphaned record behind.
type RollbackFailure struct {
	Entity  string
	ID      int64
	Message string
}

// RollbackResult reports exactly what rollback cleaned up. Status is
// RollbackComplete iff zero deletes failed; Attempts counts every delete
// tried, including the failed ones.
type RollbackResult struct {
	Status   RollbackStatus
	Attempts int
	Failures []RollbackFailure
}

// CommitStructureError is the single failure surface of the commit engine.
// It carries the original cause, the journal as it stood when the forward
// pass failed, and the rollback outcome, so the caller always learns the
// true cleanup state.
type CommitStructureError struct {
	Phase    Phase
	Journal  Journal
	Rollback RollbackResult
	Cause    error
}

func (e *CommitStructureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "commit failed during %s: %v", e.Phase, e.Cause)
	if e.Rollback.Attempts > 0 || len(e.Rollback.Failures) > 0 {
		fmt.Fprintf(&b, " (rollback %s: %d deletes attempted, %d failed)",
			e.Rollback.Status, e.Rollback.Attempts, len(e.Rollback.Failures))
	}
	return b.String()
}

func (e *CommitStructureError) Unwrap() error {
	return e.Cause
}
