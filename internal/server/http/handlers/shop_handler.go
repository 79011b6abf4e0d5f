package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/server/http/dto"
)

// ShopHandler manages shop registration and lookup endpoints.
type ShopHandler struct {
	facade ShopFacade
}

// NewShopHandler constructs ShopHandler.
func NewShopHandler(facade ShopFacade) *ShopHandler {
	return &ShopHandler{facade: facade}
}

// Create handles POST /api/shops.
func (h *ShopHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	shop, err := h.facade.CreateShop(c.Request.Context(), userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToShopResponse(*shop))
}

// ByUser handles GET /api/users/:id/shop.
func (h *ShopHandler) ByUser(c *gin.Context) {
	userID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	shop, err := h.facade.ShopByUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToShopResponse(*shop))
}
