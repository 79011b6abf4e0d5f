package repository

import (
	"context"
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// QuoteRepository describes persistence for cake quotes and shop bids.
type QuoteRepository interface {
	CreateCakeQuote(ctx context.Context, quote *model.CakeQuote) (*model.CakeQuote, error)
	GetCakeQuote(ctx context.Context, id int64) (*model.CakeQuote, error)
	ListOpenCakeQuotes(ctx context.Context, now time.Time) ([]model.CakeQuote, error)
	ListCakeQuotesByCustomer(ctx context.Context, customerID int64) ([]model.CakeQuote, error)

	// UpdateCakeQuoteStatus is conditional on the current status; a raced
	// update yields ErrInvalidTransition.
	UpdateCakeQuoteStatus(ctx context.Context, id int64, from, to model.CakeQuoteStatus) error
	SelectExpiredCakeQuotes(ctx context.Context, now time.Time, limit int) ([]model.CakeQuote, error)

	CreateShopQuote(ctx context.Context, bid *model.ShopQuote) (*model.ShopQuote, error)
	GetShopQuote(ctx context.Context, id int64) (*model.ShopQuote, error)
	ListShopQuotes(ctx context.Context, cakeQuoteID int64) ([]model.ShopQuote, error)

	// AcceptShopQuote atomically marks the bid accepted, rejects sibling
	// bids, and marks the cake quote matched.
	AcceptShopQuote(ctx context.Context, id int64) (*model.ShopQuote, error)
}

// ShopRepository describes persistence for shops and their listings.
type ShopRepository interface {
	Create(ctx context.Context, userID int64, name string) (*model.Shop, error)
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
	GetByUser(ctx context.Context, userID int64) (*model.Shop, error)
}

// PostRepository describes persistence for marketplace posts.
type PostRepository interface {
	Create(ctx context.Context, post *model.MarketplacePost) (*model.MarketplacePost, error)
	GetByID(ctx context.Context, id int64) (*model.MarketplacePost, error)
}
