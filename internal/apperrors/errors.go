package apperrors

import "errors"

// Core arithmetic and parsing failures. These are recoverable conditions
// surfaced to the caller; nothing in this module aborts the process.

// ErrIncompatibleCurrency indicates arithmetic across two mismatched currencies.
var ErrIncompatibleCurrency = errors.New("incompatible currencies")

// ErrMalformedAmount indicates an unparsable numeric or decimal input.
var ErrMalformedAmount = errors.New("malformed amount")

// ErrInvalidRate indicates a price constructed with a zero or negative denominator.
var ErrInvalidRate = errors.New("invalid exchange rate")

// ErrMalformedRecord indicates a split record that does not match any supported text format.
var ErrMalformedRecord = errors.New("malformed split record")

// ErrUnknownSplitType indicates a split type token that is neither CREDIT nor DEBIT.
var ErrUnknownSplitType = errors.New("unknown split type")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")
