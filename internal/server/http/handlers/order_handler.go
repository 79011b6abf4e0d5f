package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thangnstse171771/cakestory-market/internal/app"
	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/server/http/dto"
	"github.com/thangnstse171771/cakestory-market/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/cake-orders.
func (h *OrderHandler) Place(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Customization: item.Customization,
		})
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), userID, usecase.PlaceOrderInput{
		ShopID:       req.ShopID,
		PostID:       req.PostID,
		BasePrice:    req.BasePrice,
		AddonTotal:   req.AddonTotal,
		TotalPrice:   req.TotalPrice,
		Size:         req.Size,
		Instructions: req.Instructions,
		Items:        items,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(*order))
}

// List handles GET /api/cake-orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// ShopList handles GET /api/shops/:id/orders.
func (h *OrderHandler) ShopList(c *gin.Context) {
	userID := CurrentUserID(c)
	shopID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.facade.ShopOrders(c.Request.Context(), userID, shopID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/cake-orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	view, err := h.facade.Order(c.Request.Context(), userID, orderID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderDetail(view))
}

// Actions handles GET /api/cake-orders/:id/actions.
func (h *OrderHandler) Actions(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	view, err := h.facade.Order(c.Request.Context(), userID, orderID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"actions": actionNames(view.Actions)})
}

// Transition handles POST /api/cake-orders/:id/transition.
func (h *OrderHandler) Transition(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	action, ok := model.ParseOrderAction(req.Action)
	if !ok {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	order, err := h.facade.TransitionOrder(c.Request.Context(), userID, orderID, action, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Import handles POST /api/cake-orders/import.
func (h *OrderHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	records, err := dto.UnwrapData[dto.ImportedOrder](body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	orders := make([]model.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, rec.ToOrder())
	}

	imported, err := h.facade.ImportOrders(c.Request.Context(), orders)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(imported))
	for _, o := range imported {
		response = append(response, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusCreated, response)
}

func toOrderDetail(view *app.OrderView) dto.OrderDetailResponse {
	window := dto.ComplaintWindowPayload{
		Eligible: view.Window.Eligible,
		Deadline: view.Window.Deadline,
	}
	if view.Window.Remaining > 0 {
		window.Remaining = view.Window.Remaining.String()
	}
	return dto.OrderDetailResponse{
		OrderResponse:   dto.ToOrderResponse(*view.Order),
		Actions:         actionNames(view.Actions),
		ComplaintWindow: window,
	}
}

func actionNames(actions []model.OrderAction) []string {
	names := make([]string, 0, len(actions))
	for _, action := range actions {
		names = append(names, string(action))
	}
	return names
}
