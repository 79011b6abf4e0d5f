package dto

import (
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// CakeQuoteRequest describes a customer's design brief payload.
type CakeQuoteRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	BudgetMin   float64   `json:"budget_min"`
	BudgetMax   float64   `json:"budget_max"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CakeQuoteResponse is a cake quote as rendered to clients.
type CakeQuoteResponse struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	BudgetMin   float64   `json:"budget_min"`
	BudgetMax   float64   `json:"budget_max"`
	ExpiresAt   time.Time `json:"expires_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuoteIngredientPayload is one priced line of a bid breakdown.
type QuoteIngredientPayload struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ShopQuoteRequest describes a shop's bid payload.
type ShopQuoteRequest struct {
	Price       float64                  `json:"price"`
	PrepDays    int                      `json:"prep_days"`
	Message     string                   `json:"message"`
	Ingredients []QuoteIngredientPayload `json:"ingredients"`
}

// ShopQuoteResponse is a shop bid as rendered to clients.
type ShopQuoteResponse struct {
	ID          int64                    `json:"id"`
	CakeQuoteID int64                    `json:"cake_quote_id"`
	ShopID      int64                    `json:"shop_id"`
	Price       float64                  `json:"price"`
	PrepDays    int                      `json:"prep_days,omitempty"`
	Message     string                   `json:"message,omitempty"`
	Status      string                   `json:"status"`
	Ingredients []QuoteIngredientPayload `json:"ingredients,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// CakeQuoteDetailResponse bundles a quote with its bids.
type CakeQuoteDetailResponse struct {
	CakeQuoteResponse
	ShopQuotes []ShopQuoteResponse `json:"shop_quotes"`
}

// ToCakeQuoteResponse converts a domain cake quote for rendering.
func ToCakeQuoteResponse(quote model.CakeQuote) CakeQuoteResponse {
	return CakeQuoteResponse{
		ID:          quote.ID,
		CustomerID:  quote.CustomerID,
		Title:       quote.Title,
		Description: quote.Description,
		ImageURL:    quote.ImageURL,
		BudgetMin:   quote.BudgetMin,
		BudgetMax:   quote.BudgetMax,
		ExpiresAt:   quote.ExpiresAt,
		Status:      string(quote.Status),
		CreatedAt:   quote.CreatedAt,
	}
}

// ToShopQuoteResponse converts a domain shop bid for rendering.
func ToShopQuoteResponse(bid model.ShopQuote) ShopQuoteResponse {
	ingredients := make([]QuoteIngredientPayload, 0, len(bid.Ingredients))
	for _, ing := range bid.Ingredients {
		ingredients = append(ingredients, QuoteIngredientPayload{
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			UnitPrice: ing.UnitPrice,
		})
	}
	return ShopQuoteResponse{
		ID:          bid.ID,
		CakeQuoteID: bid.CakeQuoteID,
		ShopID:      bid.ShopID,
		Price:       bid.Price,
		PrepDays:    bid.PrepDays,
		Message:     bid.Message,
		Status:      string(bid.Status),
		Ingredients: ingredients,
		CreatedAt:   bid.CreatedAt,
	}
}
