package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrRetrievalInconsistency means a write succeeded but the row could not be read back.
	ErrRetrievalInconsistency = errors.New("record written but could not be retrieved")
	// ErrDuplicateEmail is returned when the unique email constraint rejects an insert.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Inconsistent wraps ErrRetrievalInconsistency with the entity and id involved.
func Inconsistent(entityName string, id int64) error {
	return fmt.Errorf("%s %d: %w", entityName, id, ErrRetrievalInconsistency)
}
