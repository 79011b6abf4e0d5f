package model

import "time"

// Shop is a seller storefront owned by one user account.
type Shop struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// SizeTier is one size/price step of a marketplace post.
type SizeTier struct {
	Size  string
	Price float64
}

// MarketplacePost is a shop's published cake listing with tiered size pricing.
type MarketplacePost struct {
	ID        int64
	ShopID    int64
	Title     string
	Tiers     []SizeTier
	CreatedAt time.Time
}

// TierPrice returns the unit price for a size, when the post lists it.
func (p *MarketplacePost) TierPrice(size string) (float64, bool) {
	for _, tier := range p.Tiers {
		if tier.Size == size {
			return tier.Price, true
		}
	}
	return 0, false
}
