package app

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/domain/repository"
	"github.com/thangnstse171771/cakestory-market/internal/usecase"
)

// OrderView bundles an order with the viewer's permitted actions and the
// complaint countdown.
type OrderView struct {
	Order   *model.Order
	Actions []model.OrderAction
	Window  usecase.WindowReport
}

// MarketFacade aggregates the use cases behind one application surface. All
// methods take a user id and resolve the acting identity internally, so the
// HTTP layer never builds actors by hand.
type MarketFacade struct {
	auth       *usecase.AuthUseCase
	orders     *usecase.OrderUseCase
	complaints *usecase.ComplaintUseCase
	quotes     *usecase.QuoteUseCase
	challenges *usecase.ChallengeUseCase
	shops      repository.ShopRepository
	posts      repository.PostRepository
}

func NewMarketFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	complaints *usecase.ComplaintUseCase,
	quotes *usecase.QuoteUseCase,
	challenges *usecase.ChallengeUseCase,
	shops repository.ShopRepository,
	posts repository.PostRepository,
) *MarketFacade {
	return &MarketFacade{
		auth:       auth,
		orders:     orders,
		complaints: complaints,
		quotes:     quotes,
		challenges: challenges,
		shops:      shops,
		posts:      posts,
	}
}

// actorFor resolves the acting identity. The shop-by-user lookup wins over the
// shop id embedded on the account.
func (f *MarketFacade) actorFor(ctx context.Context, userID int64) (model.Actor, error) {
	user, err := f.auth.GetByID(ctx, userID)
	if err != nil {
		return model.Actor{}, err
	}
	var shopID *int64
	if shop, err := f.shops.GetByUser(ctx, userID); err == nil {
		shopID = &shop.ID
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return model.Actor{}, err
	}
	return model.ActorFor(user, shopID), nil
}

func (f *MarketFacade) Register(ctx context.Context, email, username, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, email, username, password, role)
	return token, err
}

func (f *MarketFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *MarketFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) PlaceOrder(ctx context.Context, userID int64, input usecase.PlaceOrderInput) (*model.Order, error) {
	input.CustomerID = userID
	return f.orders.Place(ctx, input)
}

func (f *MarketFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, userID)
}

// ShopOrders lists the incoming orders of one shop. Only that shop's owner or
// an admin may read the inbox.
func (f *MarketFacade) ShopOrders(ctx context.Context, userID, shopID int64) ([]model.Order, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin {
		if actor.Role != model.RoleShop || actor.ShopID == nil || *actor.ShopID != shopID {
			return nil, domainErrors.ErrPermissionDenied
		}
	}
	return f.orders.ListByShop(ctx, shopID)
}

// Order loads one order for the viewer, together with the actions the gate
// permits and the complaint window countdown. Customers see only their own
// orders; shop actors see orders addressed to their shop.
func (f *MarketFacade) Order(ctx context.Context, userID, orderID int64, now time.Time) (*OrderView, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(actor) && !order.ControlledBy(actor) && actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrPermissionDenied
	}

	actions, err := f.orders.Actions(ctx, order, actor, now)
	if err != nil {
		return nil, err
	}

	return &OrderView{
		Order:   order,
		Actions: actions,
		Window:  usecase.Window(order, now),
	}, nil
}

func (f *MarketFacade) TransitionOrder(ctx context.Context, userID, orderID int64, action model.OrderAction, now time.Time) (*model.Order, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.orders.Transition(ctx, actor, orderID, action, now)
}

// ImportOrders stores a batch handed over from the legacy backend. Records
// that fail to store are skipped; the successfully imported orders come back.
func (f *MarketFacade) ImportOrders(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	imported := make([]model.Order, 0, len(orders))
	for i := range orders {
		stored, err := f.orders.Import(ctx, &orders[i])
		if err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				continue
			}
			return imported, err
		}
		imported = append(imported, *stored)
	}
	return imported, nil
}

func (f *MarketFacade) FileComplaint(ctx context.Context, userID, orderID int64, reason, evidenceURL string, now time.Time) (*model.Complaint, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.complaints.File(ctx, actor, orderID, reason, evidenceURL, now)
}

func (f *MarketFacade) OrderComplaint(ctx context.Context, userID, orderID int64) (*model.Complaint, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(actor) && !order.ControlledBy(actor) && actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrPermissionDenied
	}
	return f.complaints.GetByOrder(ctx, orderID)
}

func (f *MarketFacade) CreateCakeQuote(ctx context.Context, userID int64, input usecase.CakeQuoteInput, now time.Time) (*model.CakeQuote, error) {
	return f.quotes.CreateCakeQuote(ctx, userID, input, now)
}

func (f *MarketFacade) OpenCakeQuotes(ctx context.Context, now time.Time) ([]model.CakeQuote, error) {
	return f.quotes.ListOpen(ctx, now)
}

func (f *MarketFacade) MyCakeQuotes(ctx context.Context, userID int64) ([]model.CakeQuote, error) {
	return f.quotes.ListByCustomer(ctx, userID)
}

func (f *MarketFacade) CakeQuote(ctx context.Context, id int64) (*model.CakeQuote, []model.ShopQuote, error) {
	return f.quotes.Get(ctx, id)
}

func (f *MarketFacade) SubmitShopQuote(ctx context.Context, userID, cakeQuoteID int64, input usecase.ShopQuoteInput, now time.Time) (*model.ShopQuote, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.quotes.SubmitShopQuote(ctx, actor, cakeQuoteID, input, now)
}

func (f *MarketFacade) AcceptShopQuote(ctx context.Context, userID, shopQuoteID int64) (*model.ShopQuote, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.quotes.Accept(ctx, actor, shopQuoteID)
}

func (f *MarketFacade) ConvertQuoteToOrder(ctx context.Context, userID, shopQuoteID int64) (*model.Order, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.quotes.ConvertToOrder(ctx, actor, shopQuoteID)
}

func (f *MarketFacade) CreateChallenge(ctx context.Context, userID int64, challenge *model.Challenge, now time.Time) (*model.Challenge, error) {
	return f.challenges.Create(ctx, userID, challenge, now)
}

func (f *MarketFacade) UpdateChallenge(ctx context.Context, userID int64, challenge *model.Challenge, now time.Time) error {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return err
	}
	return f.challenges.Update(ctx, actor, challenge, now)
}

func (f *MarketFacade) SetChallengeApproval(ctx context.Context, userID, challengeID int64, approval model.ChallengeApproval) error {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return err
	}
	return f.challenges.SetApproval(ctx, actor, challengeID, approval)
}

func (f *MarketFacade) Challenges(ctx context.Context) ([]model.Challenge, error) {
	return f.challenges.List(ctx)
}

func (f *MarketFacade) Challenge(ctx context.Context, id int64) (*model.Challenge, error) {
	return f.challenges.Get(ctx, id)
}

func (f *MarketFacade) JoinChallenge(ctx context.Context, userID, challengeID int64, now time.Time) (*model.ChallengeEntry, error) {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.challenges.Join(ctx, actor, challengeID, now)
}

func (f *MarketFacade) LeaveChallenge(ctx context.Context, userID, challengeID int64) error {
	actor, err := f.actorFor(ctx, userID)
	if err != nil {
		return err
	}
	return f.challenges.Leave(ctx, actor, challengeID)
}

func (f *MarketFacade) ChallengeEntries(ctx context.Context, challengeID int64) ([]model.ChallengeEntry, error) {
	return f.challenges.Entries(ctx, challengeID)
}

func (f *MarketFacade) ChallengeLeaderboard(ctx context.Context, challengeID int64, limit int) ([]model.LeaderboardRow, error) {
	return f.challenges.Leaderboard(ctx, challengeID, limit)
}

func (f *MarketFacade) CreateShop(ctx context.Context, userID int64, name string) (*model.Shop, error) {
	return f.shops.Create(ctx, userID, name)
}

func (f *MarketFacade) ShopByUser(ctx context.Context, userID int64) (*model.Shop, error) {
	return f.shops.GetByUser(ctx, userID)
}

// DueCakeQuotes feeds the sweeper with open quotes past expiry.
func (f *MarketFacade) DueCakeQuotes(ctx context.Context, now time.Time, limit int) ([]model.CakeQuote, error) {
	return f.quotes.ExpireDue(ctx, now, limit)
}

func (f *MarketFacade) ExpireCakeQuote(ctx context.Context, id int64) error {
	return f.quotes.Expire(ctx, id)
}

// OverdueShippedOrders feeds the sweeper with shipped orders whose complaint
// window lapsed.
func (f *MarketFacade) OverdueShippedOrders(ctx context.Context, window time.Duration, now time.Time, limit int) ([]model.Order, error) {
	return f.orders.OverdueShipped(ctx, window, now, limit)
}

func (f *MarketFacade) AutoCompleteOrder(ctx context.Context, orderID int64) error {
	return f.orders.AutoComplete(ctx, orderID)
}
