package model

import (
	"strings"
	"time"
)

// Role classifies how a viewer participates in the marketplace.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleShop     Role = "shop"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a role token, defaulting to customer.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleShop:
		return RoleShop
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleCustomer
	}
}

// User represents a registered marketplace account. ShopID is the shop
// identifier embedded directly on the account, used as a fallback when the
// shop-by-user lookup has no row yet.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Role         Role
	ShopID       *int64
	CreatedAt    time.Time
}

// Actor is the resolved identity a permission check runs against: the user's
// identity fields plus the shop they control, if any.
type Actor struct {
	UserID   int64
	Email    string
	Username string
	Role     Role
	ShopID   *int64
}

// ActorFor builds an Actor from a user and an optionally resolved shop id.
// An explicit shop id from the shop-by-user lookup wins over the embedded one.
func ActorFor(user *User, shopID *int64) Actor {
	actor := Actor{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		ShopID:   shopID,
	}
	if actor.ShopID == nil {
		actor.ShopID = user.ShopID
	}
	return actor
}
