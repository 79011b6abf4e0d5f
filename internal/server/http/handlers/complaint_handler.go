package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/server/http/dto"
)

// ComplaintHandler manages complaint endpoints.
type ComplaintHandler struct {
	facade ComplaintFacade
}

// NewComplaintHandler constructs ComplaintHandler.
func NewComplaintHandler(facade ComplaintFacade) *ComplaintHandler {
	return &ComplaintHandler{facade: facade}
}

// File handles POST /api/cake-orders/:id/complaints.
func (h *ComplaintHandler) File(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	complaint, err := h.facade.FileComplaint(c.Request.Context(), userID, orderID, req.Reason, req.EvidenceURL, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidReason), errors.Is(err, domainErrors.ErrInvalidEvidence):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrComplaintWindowClosed):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToComplaintResponse(*complaint))
}

// Get handles GET /api/cake-orders/:id/complaints. Visibility follows the
// order view gate: owner, fulfilling shop, or admin.
func (h *ComplaintHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	complaint, err := h.facade.OrderComplaint(c.Request.Context(), userID, orderID)
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

	c.JSON(http.StatusOK, dto.ToComplaintResponse(*complaint))
}
