package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	testhelpers "github.com/thangnstse171771/cakestory-market/internal/test"
)

func newChallengeUseCase() (*ChallengeUseCase, *testhelpers.ChallengeRepositoryStub) {
	challenges := testhelpers.NewChallengeRepositoryStub()
	return NewChallengeUseCase(challenges), challenges
}

func ptrInt64(v int64) *int64 { return &v }

func draftChallenge(now time.Time) *model.Challenge {
	return &model.Challenge{
		Title:           "mirror glaze week",
		StartAt:         now.Add(time.Hour),
		EndAt:           now.Add(7 * 24 * time.Hour),
		MinParticipants: 1,
		MaxParticipants: 2,
	}
}

func TestCreateChallengePendingApproval(t *testing.T) {
	uc, _ := newChallengeUseCase()
	now := time.Now()

	created, err := uc.Create(context.Background(), 3, draftChallenge(now), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Approval != model.ChallengePendingApproval {
		t.Fatalf("approval = %q, want pendingApproval", created.Approval)
	}
	if created.HostID != 3 {
		t.Fatalf("host = %d, want 3", created.HostID)
	}
}

func TestCreateChallengeValidation(t *testing.T) {
	uc, _ := newChallengeUseCase()
	now := time.Now()

	bad := draftChallenge(now)
	bad.EndAt = bad.StartAt.Add(-time.Hour)
	if _, err := uc.Create(context.Background(), 3, bad, now); !errors.Is(err, domainErrors.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}

	bad = draftChallenge(now)
	bad.MinParticipants = 10
	bad.MaxParticipants = 2
	if _, err := uc.Create(context.Background(), 3, bad, now); !errors.Is(err, domainErrors.ErrInvalidBounds) {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestUpdateChallengePermissions(t *testing.T) {
	uc, challenges := newChallengeUseCase()
	now := time.Now()
	created, err := uc.Create(context.Background(), 3, draftChallenge(now), now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uc.SetApproval(context.Background(), model.Actor{UserID: 99, Role: model.RoleAdmin}, created.ID, model.ChallengeApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	edit := *created
	edit.Title = "mirror glaze month"
	edit.Approval = model.ChallengeRejected // must be ignored

	stranger := model.Actor{UserID: 42, Role: model.RoleCustomer}
	if err := uc.Update(context.Background(), stranger, &edit, now); !errors.Is(err, domainErrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	host := model.Actor{UserID: 3, Role: model.RoleCustomer}
	if err := uc.Update(context.Background(), host, &edit, now); err != nil {
		t.Fatalf("host update: %v", err)
	}
	stored := challenges.Challenges[created.ID]
	if stored.Title != "mirror glaze month" {
		t.Fatalf("title = %q", stored.Title)
	}
	if stored.Approval != model.ChallengeApproved {
		t.Fatalf("approval changed to %q via update", stored.Approval)
	}
}

func TestSetApprovalAdminOnly(t *testing.T) {
	uc, _ := newChallengeUseCase()
	now := time.Now()
	created, err := uc.Create(context.Background(), 3, draftChallenge(now), now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	host := model.Actor{UserID: 3, Role: model.RoleCustomer}
	if err := uc.SetApproval(context.Background(), host, created.ID, model.ChallengeApproved); !errors.Is(err, domainErrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestJoinRules(t *testing.T) {
	uc, challenges := newChallengeUseCase()
	now := time.Now()
	created, err := uc.Create(context.Background(), 3, draftChallenge(now), now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	joiner := model.Actor{UserID: 10, Role: model.RoleCustomer}

	// Not yet approved.
	if _, err := uc.Join(context.Background(), joiner, created.ID, now); !errors.Is(err, domainErrors.ErrChallengeClosed) {
		t.Fatalf("unapproved join should fail, got %v", err)
	}

	challenges.Challenges[created.ID].Approval = model.ChallengeApproved

	if _, err := uc.Join(context.Background(), joiner, created.ID, now); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := uc.Join(context.Background(), joiner, created.ID, now); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("duplicate join should conflict, got %v", err)
	}

	second := model.Actor{UserID: 11, Role: model.RoleCustomer}
	if _, err := uc.Join(context.Background(), second, created.ID, now); err != nil {
		t.Fatalf("second join: %v", err)
	}
	third := model.Actor{UserID: 12, Role: model.RoleCustomer}
	if _, err := uc.Join(context.Background(), third, created.ID, now); !errors.Is(err, domainErrors.ErrChallengeFull) {
		t.Fatalf("full challenge join should fail, got %v", err)
	}

	// After the end the challenge is closed even while approved.
	late := challenges.Challenges[created.ID].EndAt.Add(time.Minute)
	if _, err := uc.Join(context.Background(), third, created.ID, late); !errors.Is(err, domainErrors.ErrChallengeClosed) {
		t.Fatalf("ended join should fail, got %v", err)
	}
}

func TestLeaveRemovesEntry(t *testing.T) {
	uc, challenges := newChallengeUseCase()
	now := time.Now()
	created, err := uc.Create(context.Background(), 3, draftChallenge(now), now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	challenges.Challenges[created.ID].Approval = model.ChallengeApproved

	joiner := model.Actor{UserID: 10, Role: model.RoleCustomer}
	if _, err := uc.Join(context.Background(), joiner, created.ID, now); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := uc.Leave(context.Background(), joiner, created.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	entries, err := uc.Entries(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d, want 0", len(entries))
	}
	if err := uc.Leave(context.Background(), joiner, created.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("second leave should miss, got %v", err)
	}
}

func TestLeaderboardAssignsRanks(t *testing.T) {
	uc, challenges := newChallengeUseCase()
	challenges.Rows = []model.LeaderboardRow{
		{UserID: 10, Username: "anh", PostID: ptrInt64(100), Likes: 42},
		{UserID: 11, Username: "binh", PostID: ptrInt64(101), Likes: 17},
		{UserID: 12, Username: "chi", PostID: ptrInt64(102), Likes: 3},
	}

	rows, err := uc.Leaderboard(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Fatalf("row %d rank = %d", i, row.Rank)
		}
	}
}
