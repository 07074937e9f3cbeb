package repository

import (
	"errors"
	"fmt"
)

// RepositoryError is the only error type the repository port surfaces. Status
// carries an HTTP-like code: 404 for missing rows, 500 for everything else.
// The commit engine treats any RepositoryError during a write as a trigger
// for compensating rollback.
type RepositoryError struct {
	Status  int
	Message string
	cause   error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository error (%d): %s", e.Status, e.Message)
}

func (e *RepositoryError) Unwrap() error {
	return e.cause
}

// NotFound reports whether err is a RepositoryError with a 404 status.
func NotFound(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re) && re.Status == 404
}

func notFoundErr(kind string, id int64) *RepositoryError {
	return &RepositoryError{Status: 404, Message: fmt.Sprintf("%s %d not found", kind, id)}
}

func storageErr(op string, err error) *RepositoryError {
	return &RepositoryError{Status: 500, Message: fmt.Sprintf("%s: %v", op, err), cause: err}
}
