package errors

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")

	ErrInvalidBookingID = errors.New("invalid booking ID")

	ErrInvalidField = errors.New("booking field cannot be updated")

	ErrEmptyCustomerName = errors.New("customer name cannot be empty")
)
