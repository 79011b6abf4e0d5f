package test

import (
	"context"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, username, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Email: email, Username: username, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// TransitionCall records one Transition invocation on the order stub.
type TransitionCall struct {
	OrderID   int64
	From      model.OrderStatus
	To        model.OrderStatus
	ShippedAt *time.Time
}

// OrderRepositoryStub keeps orders in-memory with CAS transition semantics.
type OrderRepositoryStub struct {
	mu          sync.Mutex
	Orders      map[int64]*model.Order
	Next        int64
	CreateErr   error
	Transitions []TransitionCall
	Overdue     []model.Order
}

// NewOrderRepositoryStub constructs the stub with initialized state.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Put seeds an order directly.
func (s *OrderRepositoryStub) Put(order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		order.ID = s.Next
		s.Next++
	}
	s.Orders[order.ID] = order
}

// Create stores a new order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *order
	stored.ID = s.Next
	s.Next++
	stored.CreatedAt = time.Now()
	s.Orders[stored.ID] = &stored
	return &stored, nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

// ListByCustomer filters stored orders by customer.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if o.CustomerID == customerID {
			result = append(result, *o)
		}
	}
	return result, nil
}

// ListByShop filters stored orders by shop.
func (s *OrderRepositoryStub) ListByShop(ctx context.Context, shopID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if o.ShopID == shopID {
			result = append(result, *o)
		}
	}
	return result, nil
}

// Transition applies a compare-and-swap status change like the real storage.
func (s *OrderRepositoryStub) Transition(ctx context.Context, orderID int64, from, to model.OrderStatus, shippedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transitions = append(s.Transitions, TransitionCall{OrderID: orderID, From: from, To: to, ShippedAt: shippedAt})
	order, ok := s.Orders[orderID]
	if !ok || order.Status != from {
		return domainErrors.ErrInvalidTransition
	}
	order.Status = to
	if shippedAt != nil {
		order.ShippedAt = shippedAt
	}
	return nil
}

// SelectOverdueShipped returns the configured overdue batch.
func (s *OrderRepositoryStub) SelectOverdueShipped(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.Overdue != nil {
		return s.Overdue, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if o.Status == model.OrderStatusShipped && o.ShippedAt != nil && o.ShippedAt.Before(cutoff) {
			result = append(result, *o)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// ComplaintRepositoryStub keeps at most one complaint per order.
type ComplaintRepositoryStub struct {
	ByOrder map[int64]*model.Complaint
	Next    int64
	Err     error
}

// NewComplaintRepositoryStub constructs the stub with initialized maps.
func NewComplaintRepositoryStub() *ComplaintRepositoryStub {
	return &ComplaintRepositoryStub{ByOrder: make(map[int64]*model.Complaint), Next: 1}
}

// Create stores a complaint unless one already exists for the order.
func (s *ComplaintRepositoryStub) Create(ctx context.Context, complaint *model.Complaint) (*model.Complaint, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByOrder[complaint.OrderID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *complaint
	stored.ID = s.Next
	s.Next++
	stored.CreatedAt = time.Now()
	s.ByOrder[stored.OrderID] = &stored
	return &stored, nil
}

// GetByOrder returns the order's complaint, if any.
func (s *ComplaintRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.Complaint, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if complaint, ok := s.ByOrder[orderID]; ok {
		return complaint, nil
	}
	return nil, domainErrors.ErrNotFound
}

// QuoteRepositoryStub keeps cake quotes and shop bids in-memory.
type QuoteRepositoryStub struct {
	CakeQuotes map[int64]*model.CakeQuote
	ShopQuotes map[int64]*model.ShopQuote
	NextQuote  int64
	NextBid    int64
}

// NewQuoteRepositoryStub constructs the stub with initialized maps.
func NewQuoteRepositoryStub() *QuoteRepositoryStub {
	return &QuoteRepositoryStub{
		CakeQuotes: make(map[int64]*model.CakeQuote),
		ShopQuotes: make(map[int64]*model.ShopQuote),
		NextQuote:  1,
		NextBid:    1,
	}
}

// CreateCakeQuote stores a new cake quote.
func (s *QuoteRepositoryStub) CreateCakeQuote(ctx context.Context, quote *model.CakeQuote) (*model.CakeQuote, error) {
	stored := *quote
	stored.ID = s.NextQuote
	s.NextQuote++
	stored.CreatedAt = time.Now()
	s.CakeQuotes[stored.ID] = &stored
	return &stored, nil
}

// GetCakeQuote fetches a cake quote by id.
func (s *QuoteRepositoryStub) GetCakeQuote(ctx context.Context, id int64) (*model.CakeQuote, error) {
	if quote, ok := s.CakeQuotes[id]; ok {
		clone := *quote
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListOpenCakeQuotes returns quotes still open and unexpired.
func (s *QuoteRepositoryStub) ListOpenCakeQuotes(ctx context.Context, now time.Time) ([]model.CakeQuote, error) {
	var result []model.CakeQuote
	for _, q := range s.CakeQuotes {
		if q.Status == model.CakeQuoteOpen && now.Before(q.ExpiresAt) {
			result = append(result, *q)
		}
	}
	return result, nil
}

// ListCakeQuotesByCustomer filters quotes by owner.
func (s *QuoteRepositoryStub) ListCakeQuotesByCustomer(ctx context.Context, customerID int64) ([]model.CakeQuote, error) {
	var result []model.CakeQuote
	for _, q := range s.CakeQuotes {
		if q.CustomerID == customerID {
			result = append(result, *q)
		}
	}
	return result, nil
}

// UpdateCakeQuoteStatus applies a compare-and-swap status change.
func (s *QuoteRepositoryStub) UpdateCakeQuoteStatus(ctx context.Context, id int64, from, to model.CakeQuoteStatus) error {
	quote, ok := s.CakeQuotes[id]
	if !ok || quote.Status != from {
		return domainErrors.ErrInvalidTransition
	}
	quote.Status = to
	return nil
}

// SelectExpiredCakeQuotes returns open quotes past expiry.
func (s *QuoteRepositoryStub) SelectExpiredCakeQuotes(ctx context.Context, now time.Time, limit int) ([]model.CakeQuote, error) {
	var result []model.CakeQuote
	for _, q := range s.CakeQuotes {
		if q.Status == model.CakeQuoteOpen && !now.Before(q.ExpiresAt) {
			result = append(result, *q)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// CreateShopQuote stores a new bid.
func (s *QuoteRepositoryStub) CreateShopQuote(ctx context.Context, bid *model.ShopQuote) (*model.ShopQuote, error) {
	stored := *bid
	stored.ID = s.NextBid
	s.NextBid++
	stored.CreatedAt = time.Now()
	s.ShopQuotes[stored.ID] = &stored
	return &stored, nil
}

// GetShopQuote fetches a bid by id.
func (s *QuoteRepositoryStub) GetShopQuote(ctx context.Context, id int64) (*model.ShopQuote, error) {
	if bid, ok := s.ShopQuotes[id]; ok {
		clone := *bid
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListShopQuotes returns bids for one cake quote.
func (s *QuoteRepositoryStub) ListShopQuotes(ctx context.Context, cakeQuoteID int64) ([]model.ShopQuote, error) {
	var result []model.ShopQuote
	for _, bid := range s.ShopQuotes {
		if bid.CakeQuoteID == cakeQuoteID {
			result = append(result, *bid)
		}
	}
	return result, nil
}

// AcceptShopQuote accepts one bid, rejects siblings, and matches the quote.
func (s *QuoteRepositoryStub) AcceptShopQuote(ctx context.Context, id int64) (*model.ShopQuote, error) {
	accepted, ok := s.ShopQuotes[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	for _, bid := range s.ShopQuotes {
		if bid.CakeQuoteID == accepted.CakeQuoteID && bid.ID != id {
			bid.Status = model.ShopQuoteRejected
		}
	}
	accepted.Status = model.ShopQuoteAccepted
	if quote, ok := s.CakeQuotes[accepted.CakeQuoteID]; ok {
		quote.Status = model.CakeQuoteMatched
	}
	clone := *accepted
	return &clone, nil
}

// ChallengeRepositoryStub keeps challenges and entries in-memory.
type ChallengeRepositoryStub struct {
	Challenges map[int64]*model.Challenge
	Entries    map[int64][]model.ChallengeEntry
	Rows       []model.LeaderboardRow
	NextID     int64
	NextEntry  int64
}

// NewChallengeRepositoryStub constructs the stub with initialized maps.
func NewChallengeRepositoryStub() *ChallengeRepositoryStub {
	return &ChallengeRepositoryStub{
		Challenges: make(map[int64]*model.Challenge),
		Entries:    make(map[int64][]model.ChallengeEntry),
		NextID:     1,
		NextEntry:  1,
	}
}

// Create stores a new challenge.
func (s *ChallengeRepositoryStub) Create(ctx context.Context, challenge *model.Challenge) (*model.Challenge, error) {
	stored := *challenge
	stored.ID = s.NextID
	s.NextID++
	stored.CreatedAt = time.Now()
	s.Challenges[stored.ID] = &stored
	return &stored, nil
}

// Update replaces challenge fields.
func (s *ChallengeRepositoryStub) Update(ctx context.Context, challenge *model.Challenge) error {
	if _, ok := s.Challenges[challenge.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *challenge
	s.Challenges[challenge.ID] = &stored
	return nil
}

// GetByID fetches a challenge by id.
func (s *ChallengeRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	if challenge, ok := s.Challenges[id]; ok {
		clone := *challenge
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored challenges.
func (s *ChallengeRepositoryStub) List(ctx context.Context) ([]model.Challenge, error) {
	var result []model.Challenge
	for _, c := range s.Challenges {
		result = append(result, *c)
	}
	return result, nil
}

// SetApproval changes the moderation status.
func (s *ChallengeRepositoryStub) SetApproval(ctx context.Context, id int64, approval model.ChallengeApproval) error {
	challenge, ok := s.Challenges[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	challenge.Approval = approval
	return nil
}

// AddEntry joins a user, enforcing capacity and uniqueness.
func (s *ChallengeRepositoryStub) AddEntry(ctx context.Context, challengeID, userID int64) (*model.ChallengeEntry, error) {
	challenge, ok := s.Challenges[challengeID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	entries := s.Entries[challengeID]
	for _, e := range entries {
		if e.UserID == userID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if challenge.MaxParticipants > 0 && len(entries) >= challenge.MaxParticipants {
		return nil, domainErrors.ErrChallengeFull
	}
	entry := model.ChallengeEntry{ID: s.NextEntry, ChallengeID: challengeID, UserID: userID, JoinedAt: time.Now()}
	s.NextEntry++
	s.Entries[challengeID] = append(entries, entry)
	return &entry, nil
}

// RemoveEntry deletes a user's entry.
func (s *ChallengeRepositoryStub) RemoveEntry(ctx context.Context, challengeID, userID int64) error {
	entries := s.Entries[challengeID]
	for i, e := range entries {
		if e.UserID == userID {
			s.Entries[challengeID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ListEntries returns entries for a challenge.
func (s *ChallengeRepositoryStub) ListEntries(ctx context.Context, challengeID int64) ([]model.ChallengeEntry, error) {
	return s.Entries[challengeID], nil
}

// Leaderboard returns the configured ranking rows.
func (s *ChallengeRepositoryStub) Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.LeaderboardRow, error) {
	if limit < len(s.Rows) {
		return s.Rows[:limit], nil
	}
	return s.Rows, nil
}

// ShopRepositoryStub keeps shops in-memory.
type ShopRepositoryStub struct {
	ByID   map[int64]*model.Shop
	ByUser map[int64]*model.Shop
	Next   int64
}

// NewShopRepositoryStub constructs the stub with initialized maps.
func NewShopRepositoryStub() *ShopRepositoryStub {
	return &ShopRepositoryStub{
		ByID:   make(map[int64]*model.Shop),
		ByUser: make(map[int64]*model.Shop),
		Next:   1,
	}
}

// Create stores a new shop for the user.
func (s *ShopRepositoryStub) Create(ctx context.Context, userID int64, name string) (*model.Shop, error) {
	if _, exists := s.ByUser[userID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	shop := &model.Shop{ID: s.Next, UserID: userID, Name: strings.TrimSpace(name), CreatedAt: time.Now()}
	s.Next++
	s.ByID[shop.ID] = shop
	s.ByUser[userID] = shop
	return shop, nil
}

// GetByID fetches a shop by id.
func (s *ShopRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	if shop, ok := s.ByID[id]; ok {
		return shop, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByUser fetches the shop owned by the user.
func (s *ShopRepositoryStub) GetByUser(ctx context.Context, userID int64) (*model.Shop, error) {
	if shop, ok := s.ByUser[userID]; ok {
		return shop, nil
	}
	return nil, domainErrors.ErrNotFound
}

// PostRepositoryStub keeps marketplace posts in-memory.
type PostRepositoryStub struct {
	Posts map[int64]*model.MarketplacePost
	Next  int64
}

// NewPostRepositoryStub constructs the stub with initialized maps.
func NewPostRepositoryStub() *PostRepositoryStub {
	return &PostRepositoryStub{Posts: make(map[int64]*model.MarketplacePost), Next: 1}
}

// Create stores a new post.
func (s *PostRepositoryStub) Create(ctx context.Context, post *model.MarketplacePost) (*model.MarketplacePost, error) {
	stored := *post
	stored.ID = s.Next
	s.Next++
	s.Posts[stored.ID] = &stored
	return &stored, nil
}

// GetByID fetches a post by id.
func (s *PostRepositoryStub) GetByID(ctx context.Context, id int64) (*model.MarketplacePost, error) {
	if post, ok := s.Posts[id]; ok {
		clone := *post
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}
