package domain

import (
	"errors"
	"fmt"
)

// InvalidInputError covers bad prices, rates and malformed request fields.
type InvalidInputError struct {
	Field string
	Msg   string
}

func (e InvalidInputError) Error() string {
	if e.Field != "" && e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "invalid input"
}

type ApartmentNotFoundError struct {
	ApartmentID int64
	Err         error
}

func (e ApartmentNotFoundError) Error() string {
	return fmt.Sprintf("apartment %d not found", e.ApartmentID)
}

func (e ApartmentNotFoundError) Unwrap() error { return e.Err }

// BookingNotFoundError is raised when a confirmation signal cannot be matched
// to any booking. It is reported, never retried.
type BookingNotFoundError struct {
	TenantRef   string
	ApartmentID int64
	Err         error
}

func (e BookingNotFoundError) Error() string {
	if e.TenantRef == "" && e.ApartmentID == 0 {
		return "booking not found"
	}
	return fmt.Sprintf("no booking for tenant %q apartment %d", e.TenantRef, e.ApartmentID)
}

func (e BookingNotFoundError) Unwrap() error { return e.Err }

// DuplicatePendingBookingError blocks a second concurrent payment intent for
// the same intended rental.
type DuplicatePendingBookingError struct {
	TenantID    int64
	ApartmentID int64
}

func (e DuplicatePendingBookingError) Error() string {
	return fmt.Sprintf("tenant %d already has a pending booking for apartment %d", e.TenantID, e.ApartmentID)
}

// LandlordPayoutNotConfiguredError means the apartment has no settlement
// destination; a charge must not be started.
type LandlordPayoutNotConfiguredError struct {
	ApartmentID int64
}

func (e LandlordPayoutNotConfiguredError) Error() string {
	return fmt.Sprintf("landlord payout account not configured for apartment %d", e.ApartmentID)
}

// GatewayError wraps charge initiation / transport failures from Paystack.
type GatewayError struct {
	Op  string
	Msg string
	Err error
}

func (e GatewayError) Error() string {
	switch {
	case e.Msg != "" && e.Op != "":
		return fmt.Sprintf("gateway %s: %s", e.Op, e.Msg)
	case e.Op != "":
		return fmt.Sprintf("gateway %s failed", e.Op)
	default:
		return "gateway error"
	}
}

func (e GatewayError) Unwrap() error { return e.Err }

// PersistenceError wraps ledger store failures.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("persistence %s failed", e.Op)
	}
	return "persistence error"
}

func (e PersistenceError) Unwrap() error { return e.Err }

func IsInvalidInput(err error) bool {
	var target InvalidInputError
	return errors.As(err, &target)
}

func IsApartmentNotFound(err error) bool {
	var target ApartmentNotFoundError
	return errors.As(err, &target)
}

func IsBookingNotFound(err error) bool {
	var target BookingNotFoundError
	return errors.As(err, &target)
}

func IsDuplicatePendingBooking(err error) bool {
	var target DuplicatePendingBookingError
	return errors.As(err, &target)
}

func IsLandlordPayoutNotConfigured(err error) bool {
	var target LandlordPayoutNotConfiguredError
	return errors.As(err, &target)
}

func IsGateway(err error) bool {
	var target GatewayError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}
