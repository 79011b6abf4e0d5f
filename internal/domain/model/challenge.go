package model

import (
	"strings"
	"time"
)

// ChallengeApproval is the admin-facing moderation status, distinct from the
// time-derived phase.
type ChallengeApproval string

const (
	ChallengePendingApproval ChallengeApproval = "pendingApproval"
	ChallengeApproved        ChallengeApproval = "approved"
	ChallengeRejected        ChallengeApproval = "rejected"
)

// ChallengePhase is derived purely from the clock against start/end.
type ChallengePhase string

const (
	ChallengeNotStart ChallengePhase = "notStart"
	ChallengeOnGoing  ChallengePhase = "onGoing"
	ChallengeEnded    ChallengePhase = "ended"
)

// Challenge is a time-boxed baking competition.
type Challenge struct {
	ID              int64
	HostID          int64
	Title           string
	Description     string
	StartAt         time.Time
	EndAt           time.Time
	Prize           string
	MinParticipants int
	MaxParticipants int
	Hashtags        []string
	Rules           string
	Requirements    string
	Approval        ChallengeApproval
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Phase computes the display status from the clock.
func (c *Challenge) Phase(now time.Time) ChallengePhase {
	switch {
	case now.Before(c.StartAt):
		return ChallengeNotStart
	case now.Before(c.EndAt):
		return ChallengeOnGoing
	default:
		return ChallengeEnded
	}
}

// Joinable reports whether a new participant may enter at the given instant,
// ignoring capacity which only the storage layer can check atomically.
func (c *Challenge) Joinable(now time.Time) bool {
	return c.Approval == ChallengeApproved && c.Phase(now) != ChallengeEnded
}

// RuleList splits the newline-delimited rules text for display.
func (c *Challenge) RuleList() []string {
	return SplitLines(c.Rules)
}

// RequirementList splits the newline-delimited requirements text for display.
func (c *Challenge) RequirementList() []string {
	return SplitLines(c.Requirements)
}

// SplitLines breaks newline-delimited text into trimmed non-empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// ChallengeEntry links a participant to a challenge and, once they post, to
// their contribution.
type ChallengeEntry struct {
	ID          int64
	ChallengeID int64
	UserID      int64
	PostID      *int64
	JoinedAt    time.Time
}

// LeaderboardRow is one ranked participant. Rank is assigned by the service in
// query order; ties stay as the query returned them.
type LeaderboardRow struct {
	Rank     int
	UserID   int64
	Username string
	PostID   *int64
	Likes    int
}
