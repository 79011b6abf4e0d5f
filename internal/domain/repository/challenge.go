package repository

import (
	"context"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// ChallengeRepository describes persistence for challenges and participation.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *model.Challenge) (*model.Challenge, error)
	Update(ctx context.Context, challenge *model.Challenge) error
	GetByID(ctx context.Context, id int64) (*model.Challenge, error)
	List(ctx context.Context) ([]model.Challenge, error)
	SetApproval(ctx context.Context, id int64, approval model.ChallengeApproval) error

	// AddEntry joins a user, enforcing the participant cap and uniqueness
	// atomically. A full challenge yields ErrChallengeFull, a duplicate join
	// ErrAlreadyExists.
	AddEntry(ctx context.Context, challengeID, userID int64) (*model.ChallengeEntry, error)
	RemoveEntry(ctx context.Context, challengeID, userID int64) error
	ListEntries(ctx context.Context, challengeID int64) ([]model.ChallengeEntry, error)

	// Leaderboard returns participants ordered by post likes descending.
	// Rank numbers are assigned by the caller in iteration order.
	Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.LeaderboardRow, error)
}
