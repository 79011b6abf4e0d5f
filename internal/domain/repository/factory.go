package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Shops() ShopRepository
	Posts() PostRepository
	Orders() OrderRepository
	Complaints() ComplaintRepository
	Challenges() ChallengeRepository
	Quotes() QuoteRepository
}
