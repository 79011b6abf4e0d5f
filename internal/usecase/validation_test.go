package usecase

import (
	"errors"
	"testing"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
)

func TestValidateBudgetRange(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{"valid", 100, 500, false},
		{"equal bounds", 100, 100, false},
		{"zero min", 0, 500, false},
		{"inverted", 500, 100, true},
		{"negative min", -1, 100, true},
		{"zero max", 0, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBudgetRange(tc.min, tc.max)
			if got := errors.Is(err, domainErrors.ErrInvalidBudgetRange); got != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name       string
		start, end time.Time
		wantErr    bool
	}{
		{"future window", now.Add(time.Hour), now.Add(2 * time.Hour), false},
		{"running window", now.Add(-time.Hour), now.Add(time.Hour), false},
		{"inverted", now.Add(2 * time.Hour), now.Add(time.Hour), true},
		{"already ended", now.Add(-2 * time.Hour), now.Add(-time.Hour), true},
		{"zero start", time.Time{}, now.Add(time.Hour), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSchedule(tc.start, tc.end, now)
			if got := errors.Is(err, domainErrors.ErrInvalidSchedule); got != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateParticipantBounds(t *testing.T) {
	cases := []struct {
		name     string
		min, max int
		wantErr  bool
	}{
		{"valid", 1, 50, false},
		{"equal bounds", 10, 10, false},
		{"inverted", 50, 1, true},
		{"zero max", 0, 0, true},
		{"negative min", -1, 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateParticipantBounds(tc.min, tc.max)
			if got := errors.Is(err, domainErrors.ErrInvalidBounds); got != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateReason(t *testing.T) {
	if err := ValidateReason("cake arrived crushed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateReason("   "); !errors.Is(err, domainErrors.ErrInvalidReason) {
		t.Fatalf("blank reason: got %v", err)
	}
}
