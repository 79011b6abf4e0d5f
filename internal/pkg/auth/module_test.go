package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/thangnstse171771/cakestory-market/internal/config"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := newPasswordHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}

func TestNewTokenStrategy(t *testing.T) {
	strategy, err := newTokenStrategy(strategyParams{Config: &config.Config{JWTSecret: "top-secret", AuthStrategy: "hmac"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}

	strategy, err = newTokenStrategy(strategyParams{Config: &config.Config{JWTSecret: "top-secret", AuthStrategy: "jwt"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := strategy.(*JWTStrategy); !ok {
		t.Fatalf("expected *JWTStrategy, got %T", strategy)
	}

	if _, err := newTokenStrategy(strategyParams{Config: &config.Config{AuthStrategy: "plain"}}); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
