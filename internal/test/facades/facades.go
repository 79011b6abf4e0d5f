// Package facades holds handler-facing facade stubs. They live apart from the
// repository stubs so that use case tests can import those without dragging in
// the application layer.
package facades

import (
	"context"
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/app"
	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/usecase"
)

// AuthFacadeStub mimics authentication facade behavior for handler tests.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, email, username, password string, role model.Role) (string, error)
	AuthenticateFn func(ctx context.Context, email, password string) (string, error)
	ParseFn        func(token string) (int64, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, email, username, password string, role model.Role) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, username, password, role)
	}
	return "token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// OrderFacadeStub mimics order facade behavior for handler tests.
type OrderFacadeStub struct {
	PlaceFn      func(ctx context.Context, userID int64, input usecase.PlaceOrderInput) (*model.Order, error)
	OrdersFn     func(ctx context.Context, userID int64) ([]model.Order, error)
	ShopOrdersFn func(ctx context.Context, userID, shopID int64) ([]model.Order, error)
	OrderFn      func(ctx context.Context, userID, orderID int64, now time.Time) (*app.OrderView, error)
	TransitionFn func(ctx context.Context, userID, orderID int64, action model.OrderAction, now time.Time) (*model.Order, error)
	ImportFn     func(ctx context.Context, orders []model.Order) ([]model.Order, error)
}

func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64, input usecase.PlaceOrderInput) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, input)
	}
	return &model.Order{ID: 1, Number: "n-1", CustomerID: userID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s OrderFacadeStub) ShopOrders(ctx context.Context, userID, shopID int64) ([]model.Order, error) {
	if s.ShopOrdersFn != nil {
		return s.ShopOrdersFn(ctx, userID, shopID)
	}
	return nil, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64, now time.Time) (*app.OrderView, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID, now)
	}
	return &app.OrderView{Order: &model.Order{ID: orderID, CustomerID: userID, Status: model.OrderStatusPending}}, nil
}

func (s OrderFacadeStub) TransitionOrder(ctx context.Context, userID, orderID int64, action model.OrderAction, now time.Time) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, userID, orderID, action, now)
	}
	return &model.Order{ID: orderID, CustomerID: userID, Status: model.OrderStatusCancelled}, nil
}

func (s OrderFacadeStub) ImportOrders(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	if s.ImportFn != nil {
		return s.ImportFn(ctx, orders)
	}
	return orders, nil
}

// ComplaintFacadeStub mimics complaint facade behavior for handler tests.
type ComplaintFacadeStub struct {
	FileFn func(ctx context.Context, userID, orderID int64, reason, evidenceURL string, now time.Time) (*model.Complaint, error)
	GetFn  func(ctx context.Context, userID, orderID int64) (*model.Complaint, error)
}

func (s ComplaintFacadeStub) FileComplaint(ctx context.Context, userID, orderID int64, reason, evidenceURL string, now time.Time) (*model.Complaint, error) {
	if s.FileFn != nil {
		return s.FileFn(ctx, userID, orderID, reason, evidenceURL, now)
	}
	return &model.Complaint{ID: 1, OrderID: orderID, CustomerID: userID, Reason: reason}, nil
}

func (s ComplaintFacadeStub) OrderComplaint(ctx context.Context, userID, orderID int64) (*model.Complaint, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, orderID)
	}
	return nil, domainErrors.ErrNotFound
}

// QuoteFacadeStub mimics quote facade behavior for handler tests.
type QuoteFacadeStub struct {
	CreateFn  func(ctx context.Context, userID int64, input usecase.CakeQuoteInput, now time.Time) (*model.CakeQuote, error)
	OpenFn    func(ctx context.Context, now time.Time) ([]model.CakeQuote, error)
	MineFn    func(ctx context.Context, userID int64) ([]model.CakeQuote, error)
	GetFn     func(ctx context.Context, id int64) (*model.CakeQuote, []model.ShopQuote, error)
	SubmitFn  func(ctx context.Context, userID, cakeQuoteID int64, input usecase.ShopQuoteInput, now time.Time) (*model.ShopQuote, error)
	AcceptFn  func(ctx context.Context, userID, shopQuoteID int64) (*model.ShopQuote, error)
	ConvertFn func(ctx context.Context, userID, shopQuoteID int64) (*model.Order, error)
}

func (s QuoteFacadeStub) CreateCakeQuote(ctx context.Context, userID int64, input usecase.CakeQuoteInput, now time.Time) (*model.CakeQuote, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, input, now)
	}
	return &model.CakeQuote{ID: 1, CustomerID: userID, Title: input.Title, Status: model.CakeQuoteOpen}, nil
}

func (s QuoteFacadeStub) OpenCakeQuotes(ctx context.Context, now time.Time) ([]model.CakeQuote, error) {
	if s.OpenFn != nil {
		return s.OpenFn(ctx, now)
	}
	return nil, nil
}

func (s QuoteFacadeStub) MyCakeQuotes(ctx context.Context, userID int64) ([]model.CakeQuote, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, userID)
	}
	return nil, nil
}

func (s QuoteFacadeStub) CakeQuote(ctx context.Context, id int64) (*model.CakeQuote, []model.ShopQuote, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.CakeQuote{ID: id, Status: model.CakeQuoteOpen}, nil, nil
}

func (s QuoteFacadeStub) SubmitShopQuote(ctx context.Context, userID, cakeQuoteID int64, input usecase.ShopQuoteInput, now time.Time) (*model.ShopQuote, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, cakeQuoteID, input, now)
	}
	return &model.ShopQuote{ID: 1, CakeQuoteID: cakeQuoteID, Price: input.Price, Status: model.ShopQuotePending}, nil
}

func (s QuoteFacadeStub) AcceptShopQuote(ctx context.Context, userID, shopQuoteID int64) (*model.ShopQuote, error) {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, userID, shopQuoteID)
	}
	return &model.ShopQuote{ID: shopQuoteID, Status: model.ShopQuoteAccepted}, nil
}

func (s QuoteFacadeStub) ConvertQuoteToOrder(ctx context.Context, userID, shopQuoteID int64) (*model.Order, error) {
	if s.ConvertFn != nil {
		return s.ConvertFn(ctx, userID, shopQuoteID)
	}
	return &model.Order{ID: 1, CustomerID: userID, Status: model.OrderStatusPending}, nil
}

// ChallengeFacadeStub mimics challenge facade behavior for handler tests.
type ChallengeFacadeStub struct {
	CreateFn      func(ctx context.Context, userID int64, challenge *model.Challenge, now time.Time) (*model.Challenge, error)
	UpdateFn      func(ctx context.Context, userID int64, challenge *model.Challenge, now time.Time) error
	ApprovalFn    func(ctx context.Context, userID, challengeID int64, approval model.ChallengeApproval) error
	ListFn        func(ctx context.Context) ([]model.Challenge, error)
	GetFn         func(ctx context.Context, id int64) (*model.Challenge, error)
	JoinFn        func(ctx context.Context, userID, challengeID int64, now time.Time) (*model.ChallengeEntry, error)
	LeaveFn       func(ctx context.Context, userID, challengeID int64) error
	EntriesFn     func(ctx context.Context, challengeID int64) ([]model.ChallengeEntry, error)
	LeaderboardFn func(ctx context.Context, challengeID int64, limit int) ([]model.LeaderboardRow, error)
}

func (s ChallengeFacadeStub) CreateChallenge(ctx context.Context, userID int64, challenge *model.Challenge, now time.Time) (*model.Challenge, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, challenge, now)
	}
	stored := *challenge
	stored.ID = 1
	stored.HostID = userID
	stored.Approval = model.ChallengePendingApproval
	return &stored, nil
}

func (s ChallengeFacadeStub) UpdateChallenge(ctx context.Context, userID int64, challenge *model.Challenge, now time.Time) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, challenge, now)
	}
	return nil
}

func (s ChallengeFacadeStub) SetChallengeApproval(ctx context.Context, userID, challengeID int64, approval model.ChallengeApproval) error {
	if s.ApprovalFn != nil {
		return s.ApprovalFn(ctx, userID, challengeID, approval)
	}
	return nil
}

func (s ChallengeFacadeStub) Challenges(ctx context.Context) ([]model.Challenge, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

func (s ChallengeFacadeStub) Challenge(ctx context.Context, id int64) (*model.Challenge, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Challenge{ID: id, Approval: model.ChallengeApproved}, nil
}

func (s ChallengeFacadeStub) JoinChallenge(ctx context.Context, userID, challengeID int64, now time.Time) (*model.ChallengeEntry, error) {
	if s.JoinFn != nil {
		return s.JoinFn(ctx, userID, challengeID, now)
	}
	return &model.ChallengeEntry{ID: 1, ChallengeID: challengeID, UserID: userID}, nil
}

func (s ChallengeFacadeStub) LeaveChallenge(ctx context.Context, userID, challengeID int64) error {
	if s.LeaveFn != nil {
		return s.LeaveFn(ctx, userID, challengeID)
	}
	return nil
}

func (s ChallengeFacadeStub) ChallengeEntries(ctx context.Context, challengeID int64) ([]model.ChallengeEntry, error) {
	if s.EntriesFn != nil {
		return s.EntriesFn(ctx, challengeID)
	}
	return nil, nil
}

func (s ChallengeFacadeStub) ChallengeLeaderboard(ctx context.Context, challengeID int64, limit int) ([]model.LeaderboardRow, error) {
	if s.LeaderboardFn != nil {
		return s.LeaderboardFn(ctx, challengeID, limit)
	}
	return nil, nil
}

// ShopFacadeStub mimics shop facade behavior for handler tests.
type ShopFacadeStub struct {
	CreateFn func(ctx context.Context, userID int64, name string) (*model.Shop, error)
	ByUserFn func(ctx context.Context, userID int64) (*model.Shop, error)
}

func (s ShopFacadeStub) CreateShop(ctx context.Context, userID int64, name string) (*model.Shop, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, name)
	}
	return &model.Shop{ID: 1, UserID: userID, Name: name}, nil
}

func (s ShopFacadeStub) ShopByUser(ctx context.Context, userID int64) (*model.Shop, error) {
	if s.ByUserFn != nil {
		return s.ByUserFn(ctx, userID)
	}
	return nil, domainErrors.ErrNotFound
}

// MarketFacadeStub aggregates the per-area stubs behind one facade surface.
type MarketFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ComplaintFacadeStub
	QuoteFacadeStub
	ChallengeFacadeStub
	ShopFacadeStub
}
