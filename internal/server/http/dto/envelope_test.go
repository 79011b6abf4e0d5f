package dto

import (
	"errors"
	"testing"
)

func TestUnwrapData(t *testing.T) {
	type record struct {
		Number string `json:"order_number"`
	}

	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{name: "bare object", body: `{"order_number":"A1"}`, want: []string{"A1"}},
		{name: "data object", body: `{"data":{"order_number":"A1"}}`, want: []string{"A1"}},
		{name: "bare array", body: `[{"order_number":"A1"},{"order_number":"A2"}]`, want: []string{"A1", "A2"}},
		{name: "data array", body: `{"data":[{"order_number":"A1"},{"order_number":"A2"}]}`, want: []string{"A1", "A2"}},
		{name: "whitespace", body: "  \n {\"order_number\":\"A1\"} ", want: []string{"A1"}},
		{name: "empty", body: ``, wantErr: true},
		{name: "scalar", body: `42`, wantErr: true},
		{name: "broken json", body: `{"order_number":`, wantErr: true},
		{name: "null data falls back to object", body: `{"data":null}`, want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnwrapData[record]([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedEnvelope) {
					t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec.Number != tt.want[i] {
					t.Fatalf("record %d = %q, want %q", i, rec.Number, tt.want[i])
				}
			}
		})
	}
}
