package model

import (
	"testing"
	"time"
)

func TestChallengePhase(t *testing.T) {
	now := time.Now()
	challenge := &Challenge{StartAt: now.Add(time.Hour), EndAt: now.Add(48 * time.Hour)}

	if got := challenge.Phase(now); got != ChallengeNotStart {
		t.Fatalf("before start phase = %q", got)
	}
	if got := challenge.Phase(now.Add(2 * time.Hour)); got != ChallengeOnGoing {
		t.Fatalf("mid-run phase = %q", got)
	}
	if got := challenge.Phase(now.Add(72 * time.Hour)); got != ChallengeEnded {
		t.Fatalf("after end phase = %q", got)
	}
}

func TestChallengeJoinable(t *testing.T) {
	now := time.Now()
	challenge := &Challenge{
		StartAt:  now.Add(-time.Hour),
		EndAt:    now.Add(time.Hour),
		Approval: ChallengeApproved,
	}
	if !challenge.Joinable(now) {
		t.Fatal("approved ongoing challenge must be joinable")
	}

	challenge.Approval = ChallengePendingApproval
	if challenge.Joinable(now) {
		t.Fatal("unapproved challenge must not be joinable")
	}

	challenge.Approval = ChallengeApproved
	if challenge.Joinable(now.Add(2 * time.Hour)) {
		t.Fatal("ended challenge must not be joinable")
	}
}

func TestSplitLines(t *testing.T) {
	rules := "no box mixes\n\n  fondant only  \nsubmit one photo\n"
	got := SplitLines(rules)
	want := []string{"no box mixes", "fondant only", "submit one photo"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if lines := SplitLines(""); lines != nil {
		t.Fatalf("empty text should yield no lines, got %v", lines)
	}
}

func TestResolvePrices(t *testing.T) {
	order := &Order{BasePrice: 300, AddonTotal: 50}
	order.ResolvePrices()
	if order.TotalPrice != 350 {
		t.Fatalf("total = %v, want 350", order.TotalPrice)
	}

	order = &Order{TotalPrice: 350, AddonTotal: 50}
	order.ResolvePrices()
	if order.BasePrice != 300 {
		t.Fatalf("base = %v, want 300", order.BasePrice)
	}

	order = &Order{BasePrice: 300, TotalPrice: 400, AddonTotal: 50}
	order.ResolvePrices()
	if order.BasePrice != 300 || order.TotalPrice != 400 {
		t.Fatal("both prices present must stay untouched")
	}
}
