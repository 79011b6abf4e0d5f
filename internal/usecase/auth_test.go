package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	pkgAuth "github.com/thangnstse171771/cakestory-market/internal/pkg/auth"
	testhelpers "github.com/thangnstse171771/cakestory-market/internal/test"
)

func newAuthUseCase() (*AuthUseCase, *testhelpers.UserRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	return NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}), users
}

func TestRegisterIssuesToken(t *testing.T) {
	uc, users := newAuthUseCase()

	usr, token, err := uc.Register(context.Background(), "mai@example.com", "Mai", "s3cret", model.RoleCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("token = %q", token)
	}
	if usr.Role != model.RoleCustomer {
		t.Fatalf("role = %q", usr.Role)
	}
	if users.ByEmail["mai@example.com"].PasswordHash != "hashed:s3cret" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAuthUseCase()

	if _, _, err := uc.Register(context.Background(), "mai@example.com", "Mai", "s3cret", model.RoleCustomer); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "mai@example.com", "Mai2", "other", model.RoleCustomer); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	uc, _ := newAuthUseCase()

	cases := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{"empty email", "  ", "Mai", "s3cret"},
		{"empty username", "mai@example.com", "", "s3cret"},
		{"empty password", "mai@example.com", "Mai", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.Register(context.Background(), tc.email, tc.username, tc.password, model.RoleCustomer); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, _, err := uc.Register(context.Background(), "mai@example.com", "Mai", "s3cret", model.RoleCustomer); err != nil {
		t.Fatalf("register: %v", err)
	}

	usr, token, err := uc.Authenticate(context.Background(), "mai@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Email != "mai@example.com" || token == "" {
		t.Fatalf("user = %v token = %q", usr, token)
	}

	if _, _, err := uc.Authenticate(context.Background(), "mai@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "nobody@example.com", "s3cret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
}

func TestParseToken(t *testing.T) {
	uc, _ := newAuthUseCase()

	id, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d", id)
	}

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("empty token: got %v", err)
	}
}
