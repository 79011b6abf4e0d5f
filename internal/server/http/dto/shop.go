package dto

import (
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// CreateShopRequest describes the shop creation payload.
type CreateShopRequest struct {
	Name string `json:"name"`
}

// ShopResponse is a shop as rendered to clients.
type ShopResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToShopResponse converts a domain shop for rendering.
func ToShopResponse(shop model.Shop) ShopResponse {
	return ShopResponse{
		ID:        shop.ID,
		UserID:    shop.UserID,
		Name:      shop.Name,
		CreatedAt: shop.CreatedAt,
	}
}
