package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist or is soft-deleted.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a conditional write matched no row or a
	// unique column already holds the value.
	ErrConflict = errors.New("concurrent modification")
	// ErrInsufficientStock is returned when an order line asks for more than is on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
