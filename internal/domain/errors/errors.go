package errors

import "errors"

var (
	ErrAlreadyExists         = errors.New("already exists")
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrComplaintWindowClosed = errors.New("complaint window closed")
	ErrChallengeFull         = errors.New("challenge is full")
	ErrChallengeClosed       = errors.New("challenge not open for entries")
	ErrQuoteClosed           = errors.New("cake quote not open for bids")
	ErrQuoteNotAccepted      = errors.New("shop quote not accepted")
	ErrInvalidBudgetRange    = errors.New("invalid budget range")
	ErrInvalidSchedule       = errors.New("invalid schedule")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidBounds         = errors.New("invalid participant bounds")
	ErrInvalidReason         = errors.New("complaint reason required")
	ErrInvalidEvidence       = errors.New("evidence url rejected")
)
