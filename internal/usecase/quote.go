package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/domain/repository"
)

// QuoteUseCase governs cake quotes, shop bids, and bid-to-order conversion.
type QuoteUseCase struct {
	quotes repository.QuoteRepository
	orders repository.OrderRepository
	media  EvidenceVerifier
}

// NewQuoteUseCase constructs QuoteUseCase.
func NewQuoteUseCase(quotes repository.QuoteRepository, orders repository.OrderRepository, media EvidenceVerifier) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, orders: orders, media: media}
}

// CakeQuoteInput carries a customer's design brief.
type CakeQuoteInput struct {
	Title       string
	Description string
	ImageURL    string
	BudgetMin   float64
	BudgetMax   float64
	ExpiresAt   time.Time
}

// CreateCakeQuote opens a new quote for shop bids.
func (u *QuoteUseCase) CreateCakeQuote(ctx context.Context, customerID int64, input CakeQuoteInput, now time.Time) (*model.CakeQuote, error) {
	if err := ValidateBudgetRange(input.BudgetMin, input.BudgetMax); err != nil {
		return nil, err
	}
	if !input.ExpiresAt.After(now) {
		return nil, domainErrors.ErrInvalidSchedule
	}
	if input.ImageURL != "" && u.media != nil {
		if err := u.media.Verify(ctx, input.ImageURL); err != nil {
			return nil, fmt.Errorf("%w: %w", domainErrors.ErrInvalidEvidence, err)
		}
	}

	return u.quotes.CreateCakeQuote(ctx, &model.CakeQuote{
		CustomerID:  customerID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		BudgetMin:   input.BudgetMin,
		BudgetMax:   input.BudgetMax,
		ExpiresAt:   input.ExpiresAt,
		Status:      model.CakeQuoteOpen,
	})
}

// ListOpen returns quotes still accepting bids, for shop browsing.
func (u *QuoteUseCase) ListOpen(ctx context.Context, now time.Time) ([]model.CakeQuote, error) {
	return u.quotes.ListOpenCakeQuotes(ctx, now)
}

// ListByCustomer returns the customer's own quotes.
func (u *QuoteUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.CakeQuote, error) {
	return u.quotes.ListCakeQuotesByCustomer(ctx, customerID)
}

// Get loads a quote together with its shop bids.
func (u *QuoteUseCase) Get(ctx context.Context, id int64) (*model.CakeQuote, []model.ShopQuote, error) {
	quote, err := u.quotes.GetCakeQuote(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	bids, err := u.quotes.ListShopQuotes(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return quote, bids, nil
}

// ShopQuoteInput carries a shop's bid against a cake quote.
type ShopQuoteInput struct {
	Price       float64
	PrepDays    int
	Message     string
	Ingredients []model.QuoteIngredient
}

// SubmitShopQuote places one pending bid per shop on an open quote.
func (u *QuoteUseCase) SubmitShopQuote(ctx context.Context, actor model.Actor, cakeQuoteID int64, input ShopQuoteInput, now time.Time) (*model.ShopQuote, error) {
	if actor.Role != model.RoleShop || actor.ShopID == nil {
		return nil, domainErrors.ErrPermissionDenied
	}
	if input.Price <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	quote, err := u.quotes.GetCakeQuote(ctx, cakeQuoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != model.CakeQuoteOpen || quote.Expired(now) {
		return nil, domainErrors.ErrQuoteClosed
	}

	existing, err := u.quotes.ListShopQuotes(ctx, cakeQuoteID)
	if err != nil {
		return nil, err
	}
	for _, bid := range existing {
		if bid.ShopID == *actor.ShopID && bid.Status == model.ShopQuotePending {
			return nil, domainErrors.ErrAlreadyExists
		}
	}

	return u.quotes.CreateShopQuote(ctx, &model.ShopQuote{
		CakeQuoteID: cakeQuoteID,
		ShopID:      *actor.ShopID,
		Price:       input.Price,
		PrepDays:    input.PrepDays,
		Message:     input.Message,
		Status:      model.ShopQuotePending,
		Ingredients: input.Ingredients,
	})
}

// Accept marks the bid accepted, rejects its siblings, and closes the quote to
// further bidding. Only the quote's customer may accept.
func (u *QuoteUseCase) Accept(ctx context.Context, actor model.Actor, shopQuoteID int64) (*model.ShopQuote, error) {
	bid, err := u.quotes.GetShopQuote(ctx, shopQuoteID)
	if err != nil {
		return nil, err
	}

	quote, err := u.quotes.GetCakeQuote(ctx, bid.CakeQuoteID)
	if err != nil {
		return nil, err
	}
	if quote.CustomerID != actor.UserID {
		return nil, domainErrors.ErrPermissionDenied
	}
	if quote.Status != model.CakeQuoteOpen {
		return nil, domainErrors.ErrQuoteClosed
	}

	return u.quotes.AcceptShopQuote(ctx, shopQuoteID)
}

// ConvertToOrder turns an accepted bid into a pending order, carrying the bid
// price and the ingredient breakdown as line items.
func (u *QuoteUseCase) ConvertToOrder(ctx context.Context, actor model.Actor, shopQuoteID int64) (*model.Order, error) {
	bid, err := u.quotes.GetShopQuote(ctx, shopQuoteID)
	if err != nil {
		return nil, err
	}
	if bid.Status != model.ShopQuoteAccepted {
		return nil, domainErrors.ErrQuoteNotAccepted
	}

	quote, err := u.quotes.GetCakeQuote(ctx, bid.CakeQuoteID)
	if err != nil {
		return nil, err
	}
	if quote.CustomerID != actor.UserID {
		return nil, domainErrors.ErrPermissionDenied
	}

	items := make([]model.OrderItem, 0, len(bid.Ingredients))
	var addonTotal float64
	for _, ing := range bid.Ingredients {
		items = append(items, model.OrderItem{
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			UnitPrice: ing.UnitPrice,
		})
		addonTotal += float64(ing.Quantity) * ing.UnitPrice
	}

	order := &model.Order{
		Number:       uuid.NewString(),
		CustomerID:   quote.CustomerID,
		ShopID:       bid.ShopID,
		Status:       model.OrderStatusPending,
		BasePrice:    bid.Price,
		AddonTotal:   addonTotal,
		Instructions: quote.Description,
		Items:        items,
	}
	order.ResolvePrices()

	return u.orders.Create(ctx, order)
}

// ExpireDue moves open quotes past their expiry to expired. Used by the
// lifecycle sweeper; a quote raced to matched is skipped silently.
func (u *QuoteUseCase) ExpireDue(ctx context.Context, now time.Time, limit int) ([]model.CakeQuote, error) {
	return u.quotes.SelectExpiredCakeQuotes(ctx, now, limit)
}

// Expire marks a single open quote expired.
func (u *QuoteUseCase) Expire(ctx context.Context, id int64) error {
	return u.quotes.UpdateCakeQuoteStatus(ctx, id, model.CakeQuoteOpen, model.CakeQuoteExpired)
}
