package dto

import (
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// ChallengeRequest describes the challenge creation/update payload.
type ChallengeRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Prize           string    `json:"prize"`
	MinParticipants int       `json:"min_participants"`
	MaxParticipants int       `json:"max_participants"`
	Hashtags        []string  `json:"hashtags"`
	Rules           string    `json:"rules"`
	Requirements    string    `json:"requirements"`
}

// ApprovalRequest carries an admin moderation decision.
type ApprovalRequest struct {
	Approval string `json:"approval"`
}

// ChallengeResponse is a challenge as rendered to clients. Phase derives from
// the clock at render time.
type ChallengeResponse struct {
	ID              int64     `json:"id"`
	HostID          int64     `json:"host_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Prize           string    `json:"prize,omitempty"`
	MinParticipants int       `json:"min_participants"`
	MaxParticipants int       `json:"max_participants"`
	Hashtags        []string  `json:"hashtags,omitempty"`
	Rules           []string  `json:"rules,omitempty"`
	Requirements    []string  `json:"requirements,omitempty"`
	Approval        string    `json:"approval"`
	Phase           string    `json:"phase"`
	CreatedAt       time.Time `json:"created_at"`
}

// ChallengeEntryResponse is one participation record.
type ChallengeEntryResponse struct {
	ID          int64     `json:"id"`
	ChallengeID int64     `json:"challenge_id"`
	UserID      int64     `json:"user_id"`
	PostID      *int64    `json:"post_id,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

// LeaderboardRowResponse is one ranked participant.
type LeaderboardRowResponse struct {
	Rank     int    `json:"rank"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	PostID   *int64 `json:"post_id,omitempty"`
	Likes    int    `json:"likes"`
}

// ToChallenge converts a request into a domain challenge.
func (r ChallengeRequest) ToChallenge() *model.Challenge {
	return &model.Challenge{
		Title:           r.Title,
		Description:     r.Description,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		Prize:           r.Prize,
		MinParticipants: r.MinParticipants,
		MaxParticipants: r.MaxParticipants,
		Hashtags:        r.Hashtags,
		Rules:           r.Rules,
		Requirements:    r.Requirements,
	}
}

// ToChallengeResponse converts a domain challenge for rendering at the given
// instant.
func ToChallengeResponse(challenge model.Challenge, now time.Time) ChallengeResponse {
	return ChallengeResponse{
		ID:              challenge.ID,
		HostID:          challenge.HostID,
		Title:           challenge.Title,
		Description:     challenge.Description,
		StartAt:         challenge.StartAt,
		EndAt:           challenge.EndAt,
		Prize:           challenge.Prize,
		MinParticipants: challenge.MinParticipants,
		MaxParticipants: challenge.MaxParticipants,
		Hashtags:        challenge.Hashtags,
		Rules:           challenge.RuleList(),
		Requirements:    challenge.RequirementList(),
		Approval:        string(challenge.Approval),
		Phase:           string(challenge.Phase(now)),
		CreatedAt:       challenge.CreatedAt,
	}
}

// ToChallengeEntryResponse converts a participation record for rendering.
func ToChallengeEntryResponse(entry model.ChallengeEntry) ChallengeEntryResponse {
	return ChallengeEntryResponse{
		ID:          entry.ID,
		ChallengeID: entry.ChallengeID,
		UserID:      entry.UserID,
		PostID:      entry.PostID,
		JoinedAt:    entry.JoinedAt,
	}
}

// ToLeaderboardRowResponse converts a ranked row for rendering.
func ToLeaderboardRowResponse(row model.LeaderboardRow) LeaderboardRowResponse {
	return LeaderboardRowResponse{
		Rank:     row.Rank,
		UserID:   row.UserID,
		Username: row.Username,
		PostID:   row.PostID,
		Likes:    row.Likes,
	}
}
