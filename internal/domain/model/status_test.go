package model

import "testing"

func TestNormalizeStatusSynonyms(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
	}{
		{"new", OrderStatusPending},
		{"pending", OrderStatusPending},
		{"accepted", OrderStatusOrdered},
		{"confirmed", OrderStatusOrdered},
		{"received", OrderStatusOrdered},
		{"ready", OrderStatusPrepared},
		{"preparing", OrderStatusPrepared},
		{"prepared_for_delivery", OrderStatusPrepared},
		{"shipping", OrderStatusShipped},
		{"delivering", OrderStatusShipped},
		{"in_transit", OrderStatusShipped},
		{"ready_to_ship", OrderStatusShipped},
		{"done", OrderStatusCompleted},
		{"delivered", OrderStatusCompleted},
		{"finished", OrderStatusCompleted},
		{"complaint", OrderStatusComplaining},
		{"disputed", OrderStatusComplaining},
		{"canceled", OrderStatusCancelled},
		{"ACCEPTED", OrderStatusOrdered},
		{"  Shipping ", OrderStatusShipped},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.raw); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeStatusIdempotent(t *testing.T) {
	for _, s := range CanonicalStatuses {
		if got := NormalizeStatus(string(s)); got != s {
			t.Errorf("NormalizeStatus(%q) = %q, want identity", s, got)
		}
		if got := NormalizeStatus(string(NormalizeStatus(string(s)))); got != s {
			t.Errorf("double normalize of %q = %q", s, got)
		}
	}
}

func TestNormalizeStatusPassThrough(t *testing.T) {
	if got := NormalizeStatus("xyz"); got != OrderStatus("xyz") {
		t.Fatalf("expected unrecognized token to pass through, got %q", got)
	}
	if NormalizeStatus("xyz").Known() {
		t.Fatal("pass-through value must not be canonical")
	}
}

func TestStatusLabels(t *testing.T) {
	if got := OrderStatusOrdered.Label(); got != "Đã tiếp nhận" {
		t.Fatalf("ordered label = %q", got)
	}
	for _, s := range CanonicalStatuses {
		if s.Label() == string(s) {
			t.Errorf("canonical status %q has no label", s)
		}
	}
	if got := OrderStatus("xyz").Label(); got != "xyz" {
		t.Fatalf("unknown status label = %q", got)
	}
}

func TestProgressSteps(t *testing.T) {
	tests := []struct {
		status OrderStatus
		step   int
	}{
		{OrderStatusPending, 1},
		{OrderStatusOrdered, 2},
		{OrderStatusPrepared, 3},
		{OrderStatusShipped, 4},
		{OrderStatusComplaining, 4},
		{OrderStatusCompleted, 5},
		{OrderStatusCancelled, 0},
	}
	for _, tt := range tests {
		if got := tt.status.ProgressStep(); got != tt.step {
			t.Errorf("%q step = %d, want %d", tt.status, got, tt.step)
		}
	}
}

func TestImportedStatusDisplaysNormalized(t *testing.T) {
	status := NormalizeStatus("accepted")
	if status != OrderStatusOrdered {
		t.Fatalf("accepted normalized to %q", status)
	}
	if status.Label() != "Đã tiếp nhận" {
		t.Fatalf("label = %q", status.Label())
	}
	shipped := NormalizeStatus("shipping")
	if shipped.ProgressStep() != 4 {
		t.Fatalf("shipping should land on step 4, got %d", shipped.ProgressStep())
	}
}
