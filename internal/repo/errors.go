package repo

import "errors"

var (
	// ErrItemNotFound is returned when an item does not resolve. Handlers also
	// map visibility failures to this error so existence never leaks.
	ErrItemNotFound = errors.New("item not found")

	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrDuplicatedValueUnique is returned on unique-constraint violations
	// (usernames, category names).
	ErrDuplicatedValueUnique = errors.New("duplicated value on unique column")

	// ErrNegativeQuantity is returned when a mutation would take an item's
	// quantity below zero.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
