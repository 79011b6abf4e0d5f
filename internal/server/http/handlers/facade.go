package handlers

import (
	"context"
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/app"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, username, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, input usecase.PlaceOrderInput) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	ShopOrders(ctx context.Context, userID, shopID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64, now time.Time) (*app.OrderView, error)
	TransitionOrder(ctx context.Context, userID, orderID int64, action model.OrderAction, now time.Time) (*model.Order, error)
	ImportOrders(ctx context.Context, orders []model.Order) ([]model.Order, error)
}

// ComplaintFacade provides complaint filing and lookup.
type ComplaintFacade interface {
	FileComplaint(ctx context.Context, userID, orderID int64, reason, evidenceURL string, now time.Time) (*model.Complaint, error)
	OrderComplaint(ctx context.Context, userID, orderID int64) (*model.Complaint, error)
}

// QuoteFacade provides cake quote and shop bid operations.
type QuoteFacade interface {
	CreateCakeQuote(ctx context.Context, userID int64, input usecase.CakeQuoteInput, now time.Time) (*model.CakeQuote, error)
	OpenCakeQuotes(ctx context.Context, now time.Time) ([]model.CakeQuote, error)
	MyCakeQuotes(ctx context.Context, userID int64) ([]model.CakeQuote, error)
	CakeQuote(ctx context.Context, id int64) (*model.CakeQuote, []model.ShopQuote, error)
	SubmitShopQuote(ctx context.Context, userID, cakeQuoteID int64, input usecase.ShopQuoteInput, now time.Time) (*model.ShopQuote, error)
	AcceptShopQuote(ctx context.Context, userID, shopQuoteID int64) (*model.ShopQuote, error)
	ConvertQuoteToOrder(ctx context.Context, userID, shopQuoteID int64) (*model.Order, error)
}

// ChallengeFacade provides challenge and participation operations.
type ChallengeFacade interface {
	CreateChallenge(ctx context.Context, userID int64, challenge *model.Challenge, now time.Time) (*model.Challenge, error)
	UpdateChallenge(ctx context.Context, userID int64, challenge *model.Challenge, now time.Time) error
	SetChallengeApproval(ctx context.Context, userID, challengeID int64, approval model.ChallengeApproval) error
	Challenges(ctx context.Context) ([]model.Challenge, error)
	Challenge(ctx context.Context, id int64) (*model.Challenge, error)
	JoinChallenge(ctx context.Context, userID, challengeID int64, now time.Time) (*model.ChallengeEntry, error)
	LeaveChallenge(ctx context.Context, userID, challengeID int64) error
	ChallengeEntries(ctx context.Context, challengeID int64) ([]model.ChallengeEntry, error)
	ChallengeLeaderboard(ctx context.Context, challengeID int64, limit int) ([]model.LeaderboardRow, error)
}

// ShopFacade provides shop registration and lookup.
type ShopFacade interface {
	CreateShop(ctx context.Context, userID int64, name string) (*model.Shop, error)
	ShopByUser(ctx context.Context, userID int64) (*model.Shop, error)
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	OrderFacade
	ComplaintFacade
	QuoteFacade
	ChallengeFacade
	ShopFacade
}
