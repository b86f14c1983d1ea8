package db

import (
	"errors"
	"strings"

	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether the provided error comes from a unique
// constraint. When constraintName is provided, the helper additionally looks
// for the constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if constraintName != "" {
		return strings.Contains(err.Error(), constraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if pkgerrors.UniqueViolation(err) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// IsNotFound reports whether the error is GORM's missing-record sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
