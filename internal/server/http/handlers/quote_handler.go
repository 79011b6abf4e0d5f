package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/server/http/dto"
	"github.com/thangnstse171771/cakestory-market/internal/usecase"
)

// QuoteHandler manages cake quote and shop bid endpoints.
type QuoteHandler struct {
	facade QuoteFacade
}

// NewQuoteHandler constructs QuoteHandler.
func NewQuoteHandler(facade QuoteFacade) *QuoteHandler {
	return &QuoteHandler{facade: facade}
}

// Create handles POST /api/cake-quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CakeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	quote, err := h.facade.CreateCakeQuote(c.Request.Context(), userID, usecase.CakeQuoteInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		ExpiresAt:   req.ExpiresAt,
	}, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidBudgetRange), errors.Is(err, domainErrors.ErrInvalidSchedule):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCakeQuoteResponse(*quote))
}

// List handles GET /api/cake-quotes. Customers see their own quotes; the
// ?open=true filter lists the open board for shop browsing.
func (h *QuoteHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)

	var (
		quotes []model.CakeQuote
		err    error
	)
	if c.Query("open") == "true" {
		quotes, err = h.facade.OpenCakeQuotes(c.Request.Context(), time.Now())
	} else {
		quotes, err = h.facade.MyCakeQuotes(c.Request.Context(), userID)
	}
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(quotes) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.CakeQuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		response = append(response, dto.ToCakeQuoteResponse(q))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/cake-quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	quoteID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	quote, bids, err := h.facade.CakeQuote(c.Request.Context(), quoteID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	detail := dto.CakeQuoteDetailResponse{
		CakeQuoteResponse: dto.ToCakeQuoteResponse(*quote),
		ShopQuotes:        make([]dto.ShopQuoteResponse, 0, len(bids)),
	}
	for _, bid := range bids {
		detail.ShopQuotes = append(detail.ShopQuotes, dto.ToShopQuoteResponse(bid))
	}
	c.JSON(http.StatusOK, detail)
}

// SubmitBid handles POST /api/cake-quotes/:id/shop-quotes.
func (h *QuoteHandler) SubmitBid(c *gin.Context) {
	userID := CurrentUserID(c)
	quoteID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ShopQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	ingredients := make([]model.QuoteIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, model.QuoteIngredient{
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			UnitPrice: ing.UnitPrice,
		})
	}

	bid, err := h.facade.SubmitShopQuote(c.Request.Context(), userID, quoteID, usecase.ShopQuoteInput{
		Price:       req.Price,
		PrepDays:    req.PrepDays,
		Message:     req.Message,
		Ingredients: ingredients,
	}, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrQuoteClosed), errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToShopQuoteResponse(*bid))
}

// AcceptBid handles POST /api/shop-quotes/:id/accept.
func (h *QuoteHandler) AcceptBid(c *gin.Context) {
	userID := CurrentUserID(c)
	bidID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	bid, err := h.facade.AcceptShopQuote(c.Request.Context(), userID, bidID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrQuoteClosed):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToShopQuoteResponse(*bid))
}

// ConvertToOrder handles POST /api/shop-quotes/:id/order.
func (h *QuoteHandler) ConvertToOrder(c *gin.Context) {
	userID := CurrentUserID(c)
	bidID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ConvertQuoteToOrder(c.Request.Context(), userID, bidID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrQuoteNotAccepted):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(*order))
}
