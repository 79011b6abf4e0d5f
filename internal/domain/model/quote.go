package model

import "time"

// CakeQuoteStatus tracks a customer's open cake request.
type CakeQuoteStatus string

const (
	CakeQuoteOpen    CakeQuoteStatus = "open"
	CakeQuoteMatched CakeQuoteStatus = "matched"
	CakeQuoteExpired CakeQuoteStatus = "expired"
	CakeQuoteClosed  CakeQuoteStatus = "closed"
)

// ShopQuoteStatus tracks a shop's bid against a cake quote.
type ShopQuoteStatus string

const (
	ShopQuotePending  ShopQuoteStatus = "pending"
	ShopQuoteAccepted ShopQuoteStatus = "accepted"
	ShopQuoteRejected ShopQuoteStatus = "rejected"
)

// CakeQuote is a customer's design brief inviting shop bids.
type CakeQuote struct {
	ID          int64
	CustomerID  int64
	Title       string
	Description string
	ImageURL    string
	BudgetMin   float64
	BudgetMax   float64
	ExpiresAt   time.Time
	Status      CakeQuoteStatus
	CreatedAt   time.Time
}

// Expired reports whether the quote's bidding window has lapsed.
func (q *CakeQuote) Expired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}

// QuoteIngredient is one priced line of a shop's bid breakdown.
type QuoteIngredient struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// ShopQuote is a shop's priced bid on a cake quote. Accepting one is what
// allows converting it into an order.
type ShopQuote struct {
	ID          int64
	CakeQuoteID int64
	ShopID      int64
	Price       float64
	PrepDays    int
	Message     string
	Status      ShopQuoteStatus
	Ingredients []QuoteIngredient
	CreatedAt   time.Time
}
