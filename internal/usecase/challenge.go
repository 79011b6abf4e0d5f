package usecase

import (
	"context"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/domain/repository"
)

// ChallengeUseCase governs baking challenges and participation.
type ChallengeUseCase struct {
	challenges repository.ChallengeRepository
}

// NewChallengeUseCase constructs ChallengeUseCase.
func NewChallengeUseCase(challenges repository.ChallengeRepository) *ChallengeUseCase {
	return &ChallengeUseCase{challenges: challenges}
}

// Create registers a challenge awaiting admin approval.
func (u *ChallengeUseCase) Create(ctx context.Context, hostID int64, challenge *model.Challenge, now time.Time) (*model.Challenge, error) {
	if err := ValidateSchedule(challenge.StartAt, challenge.EndAt, now); err != nil {
		return nil, err
	}
	if err := ValidateParticipantBounds(challenge.MinParticipants, challenge.MaxParticipants); err != nil {
		return nil, err
	}

	challenge.HostID = hostID
	challenge.Approval = model.ChallengePendingApproval
	return u.challenges.Create(ctx, challenge)
}

// Update edits a challenge. Only the host or an admin may edit; the approval
// status is owned by SetApproval and never changed here.
func (u *ChallengeUseCase) Update(ctx context.Context, actor model.Actor, challenge *model.Challenge, now time.Time) error {
	existing, err := u.challenges.GetByID(ctx, challenge.ID)
	if err != nil {
		return err
	}
	if existing.HostID != actor.UserID && actor.Role != model.RoleAdmin {
		return domainErrors.ErrPermissionDenied
	}
	if err := ValidateSchedule(challenge.StartAt, challenge.EndAt, now); err != nil {
		return err
	}
	if err := ValidateParticipantBounds(challenge.MinParticipants, challenge.MaxParticipants); err != nil {
		return err
	}

	challenge.HostID = existing.HostID
	challenge.Approval = existing.Approval
	return u.challenges.Update(ctx, challenge)
}

// SetApproval changes the admin-facing moderation status.
func (u *ChallengeUseCase) SetApproval(ctx context.Context, actor model.Actor, id int64, approval model.ChallengeApproval) error {
	if actor.Role != model.RoleAdmin {
		return domainErrors.ErrPermissionDenied
	}
	return u.challenges.SetApproval(ctx, id, approval)
}

// List returns all challenges; display phase derives from the clock at
// render time.
func (u *ChallengeUseCase) List(ctx context.Context) ([]model.Challenge, error) {
	return u.challenges.List(ctx)
}

// Get fetches a single challenge.
func (u *ChallengeUseCase) Get(ctx context.Context, id int64) (*model.Challenge, error) {
	return u.challenges.GetByID(ctx, id)
}

// Join enters the actor into an approved, still-running challenge. Capacity
// and duplicate checks happen atomically in storage.
func (u *ChallengeUseCase) Join(ctx context.Context, actor model.Actor, challengeID int64, now time.Time) (*model.ChallengeEntry, error) {
	challenge, err := u.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.Joinable(now) {
		return nil, domainErrors.ErrChallengeClosed
	}
	return u.challenges.AddEntry(ctx, challengeID, actor.UserID)
}

// Leave removes the actor's entry.
func (u *ChallengeUseCase) Leave(ctx context.Context, actor model.Actor, challengeID int64) error {
	return u.challenges.RemoveEntry(ctx, challengeID, actor.UserID)
}

// Entries lists participation records for a challenge.
func (u *ChallengeUseCase) Entries(ctx context.Context, challengeID int64) ([]model.ChallengeEntry, error) {
	return u.challenges.ListEntries(ctx, challengeID)
}

// Leaderboard returns participants ranked by post likes, assigning rank
// numbers in query order. Ties stay as the storage layer returned them.
func (u *ChallengeUseCase) Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.LeaderboardRow, error) {
	rows, err := u.challenges.Leaderboard(ctx, challengeID, limit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
