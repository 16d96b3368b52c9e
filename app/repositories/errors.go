package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the identifier did not resolve to a row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps driver errors onto the package sentinels, keeping the
// original in the chain.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
		return errors.Join(ErrDuplicate, err)
	}
	return err
}

// isUniqueViolation recognises unique-constraint messages from the
// supported drivers when gorm has not translated them.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"UNIQUE constraint failed", // sqlite
		"duplicate key value",      // postgres
		"Duplicate entry",          // mysql
		"Cannot insert duplicate",  // sqlserver
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
