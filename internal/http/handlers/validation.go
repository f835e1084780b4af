package handlers

import (
	"strings"
)

type ItemValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateItem(name string, quantity int, price float64) []ItemValidationError {
	errs := []ItemValidationError{}
	if strings.TrimSpace(name) == "" {
		errs = append(errs, ItemValidationError{Field: "Name", Description: "Name is required"})
	}
	if quantity < 0 {
		errs = append(errs, ItemValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	if price < 0 {
		errs = append(errs, ItemValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	return errs
}

func validateCategory(c CategoryRequest) []ItemValidationError {
	errs := []ItemValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ItemValidationError{Field: "Name", Description: "Name is required"})
	}
	return errs
}
