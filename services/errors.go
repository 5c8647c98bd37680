package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these
// to HTTP statuses with errors.Is; anything not listed here is treated
// as an internal (transient, retryable) failure and never shown to the
// client verbatim.
var (
	// Invitation token errors — client errors, 400.
	ErrInvalidToken     = errors.New("invalid invitation token")
	ErrTokenExpired     = errors.New("invitation token has expired")
	ErrTokenAlreadyUsed = errors.New("invitation token has already been used")

	// Resource errors — 404.
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrRecordNotFound   = errors.New("consultation record not found")

	// Conflict errors — 409. ErrSlotFull is the one error expected
	// under legitimate concurrent load: the request was valid, the
	// capacity was exhausted first.
	ErrSlotFull          = errors.New("the time slot is fully booked")
	ErrDuplicateSchedule = errors.New("a schedule already exists at this date and time")
	ErrRecordExists      = errors.New("a consultation record already exists for this booking")

	// Authorization — 403.
	ErrNotOwner = errors.New("only the owning counselor may modify this resource")

	// Authentication — 401. Deliberately uniform for unknown email and
	// wrong password to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Validation — 400.
	ErrInvalidInput = errors.New("invalid input")
)
