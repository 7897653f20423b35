package auth_test

import (
	"errors"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/auth"
)

func TestNewGate_EmptySecret(t *testing.T) {
	if _, err := auth.NewGate(""); !errors.Is(err, auth.ErrNoSecret) {
		t.Errorf("NewGate(\"\") error = %v, want ErrNoSecret", err)
	}
}

func TestGate_Authorize(t *testing.T) {
	gate, err := auth.NewGate("s3cret")
	if err != nil {
		t.Fatalf("NewGate() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		supplied string
		want     bool
	}{
		{"correct secret", "s3cret", true},
		{"wrong secret", "wrong", false},
		{"empty supplied", "", false},
		{"prefix only", "s3c", false},
		{"secret with suffix", "s3cret ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Authorize(tt.supplied); got != tt.want {
				t.Errorf("Authorize(%q) = %v, want %v", tt.supplied, got, tt.want)
			}
		})
	}
}
