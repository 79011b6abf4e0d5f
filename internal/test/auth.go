package test

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// HasherStub is a reversible fake password hasher for tests.
type HasherStub struct {
	HashErr error
}

// Hash prefixes the password instead of hashing.
func (s HasherStub) Hash(password string) (string, error) {
	if s.HashErr != nil {
		return "", s.HashErr
	}
	return "hashed:" + password, nil
}

// Compare checks the prefix produced by Hash.
func (s HasherStub) Compare(hash string, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// StrategyStub issues trivially decodable tokens.
type StrategyStub struct {
	IssueErr error
	ParseErr error
}

// IssueToken encodes the user id into the token.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueErr != nil {
		return "", s.IssueErr
	}
	return fmt.Sprintf("token-%d", userID), nil
}

// ParseToken decodes tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseErr != nil {
		return 0, s.ParseErr
	}
	raw, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return 0, errors.New("malformed token")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// Name identifies the stub strategy.
func (s StrategyStub) Name() string { return "stub" }
