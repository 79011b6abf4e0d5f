package usecase

import (
	"strings"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
)

// ValidateBudgetRange checks a cake quote's min/max budget pair.
func ValidateBudgetRange(min, max float64) error {
	if min < 0 || max <= 0 || min > max {
		return domainErrors.ErrInvalidBudgetRange
	}
	return nil
}

// ValidateSchedule checks a challenge's start/end pair against the clock.
func ValidateSchedule(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) || end.Before(now) {
		return domainErrors.ErrInvalidSchedule
	}
	return nil
}

// ValidateParticipantBounds checks a challenge's min/max participant pair.
func ValidateParticipantBounds(min, max int) error {
	if min < 0 || max <= 0 || min > max {
		return domainErrors.ErrInvalidBounds
	}
	return nil
}

// ValidateReason checks complaint reason text.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domainErrors.ErrInvalidReason
	}
	return nil
}
