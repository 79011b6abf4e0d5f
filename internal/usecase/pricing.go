package usecase

import (
	"math"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

const (
	quantityRelTolerance = 0.01
	quantityAbsTolerance = 0.1
)

// DeriveQuantity infers a line-item quantity from the order's base price and
// the matching size tier's unit price. The inference is accepted only when the
// rounding error stays within 1% of the base price or 0.1 absolute. Returns
// (0, false) when no confident quantity exists.
func DeriveQuantity(basePrice, unitPrice float64) (int, bool) {
	if basePrice <= 0 || unitPrice <= 0 {
		return 0, false
	}
	quantity := math.Round(basePrice / unitPrice)
	if quantity < 1 {
		return 0, false
	}
	diff := math.Abs(basePrice - quantity*unitPrice)
	if diff > quantityAbsTolerance && diff > basePrice*quantityRelTolerance {
		return 0, false
	}
	return int(quantity), true
}

// DecorateQuantities fills missing line-item quantities from the post's size
// tier pricing. Display-only: callers must never persist the result.
func DecorateQuantities(order *model.Order, post *model.MarketplacePost) {
	if order == nil || post == nil {
		return
	}
	unitPrice, ok := post.TierPrice(order.Size)
	if !ok {
		return
	}
	quantity, ok := DeriveQuantity(order.BasePrice, unitPrice)
	if !ok {
		return
	}
	for i := range order.Items {
		if order.Items[i].Quantity == 0 {
			order.Items[i].Quantity = quantity
		}
	}
}
