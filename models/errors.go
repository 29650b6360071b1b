package models

import "errors"

// Standard sentinel errors for the billing domain. Handlers map these to
// HTTP status codes with errors.Is; business logic wraps them with
// fmt.Errorf("%w: detail") so the reason survives the trip up the stack.
var (
	// ErrValidation rejects bad input before any side effect.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a referenced bill/tenant/invoice is absent.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientFunds signals a wallet balance below the amount due.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	// ErrAlreadyPaid signals a settlement attempt against a paid invoice.
	ErrAlreadyPaid = errors.New("invoice already paid")
	// ErrTransient signals an I/O failure that left no partial state;
	// callers may retry.
	ErrTransient = errors.New("transient service error")
	// ErrFatal signals an inconsistency that could not be rolled back.
	// Never swallowed.
	ErrFatal = errors.New("fatal inconsistency")
)
