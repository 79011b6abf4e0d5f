package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/server/http/dto"
)

const defaultLeaderboardLimit = 20

// ChallengeHandler manages challenge endpoints.
type ChallengeHandler struct {
	facade ChallengeFacade
}

// NewChallengeHandler constructs ChallengeHandler.
func NewChallengeHandler(facade ChallengeFacade) *ChallengeHandler {
	return &ChallengeHandler{facade: facade}
}

// Create handles POST /api/challenges.
func (h *ChallengeHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	challenge, err := h.facade.CreateChallenge(c.Request.Context(), userID, req.ToChallenge(), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidSchedule), errors.Is(err, domainErrors.ErrInvalidBounds):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToChallengeResponse(*challenge, time.Now()))
}

// Update handles PUT /api/challenges/:id.
func (h *ChallengeHandler) Update(c *gin.Context) {
	userID := CurrentUserID(c)
	challengeID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	challenge := req.ToChallenge()
	challenge.ID = challengeID

	if err := h.facade.UpdateChallenge(c.Request.Context(), userID, challenge, time.Now()); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPermissionDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidSchedule), errors.Is(err, domainErrors.ErrInvalidBounds):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// SetApproval handles POST /api/challenges/:id/approval.
func (h *ChallengeHandler) SetApproval(c *gin.Context) {
	userID := CurrentUserID(c)
	challengeID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	approval := model.ChallengeApproval(req.Approval)
	switch approval {
	case model.ChallengeApproved, model.ChallengeRejected, model.ChallengePendingApproval:
	default:
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	if err := h.facade.SetChallengeApproval(c.Request.Context(), userID, challengeID, approval); err != nil {
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

	c.Status(http.StatusOK)
}

// List handles GET /api/challenges.
func (h *ChallengeHandler) List(c *gin.Context) {
	challenges, err := h.facade.Challenges(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(challenges) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	now := time.Now()
	response := make([]dto.ChallengeResponse, 0, len(challenges))
	for _, ch := range challenges {
		response = append(response, dto.ToChallengeResponse(ch, now))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/challenges/:id.
func (h *ChallengeHandler) Get(c *gin.Context) {
	challengeID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	challenge, err := h.facade.Challenge(c.Request.Context(), challengeID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToChallengeResponse(*challenge, time.Now()))
}

// Join handles POST /api/challenges/:id/entries.
func (h *ChallengeHandler) Join(c *gin.Context) {
	userID := CurrentUserID(c)
	challengeID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	entry, err := h.facade.JoinChallenge(c.Request.Context(), userID, challengeID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrChallengeClosed), errors.Is(err, domainErrors.ErrChallengeFull), errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToChallengeEntryResponse(*entry))
}

// Leave handles DELETE /api/challenges/:id/entries.
func (h *ChallengeHandler) Leave(c *gin.Context) {
	userID := CurrentUserID(c)
	challengeID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.LeaveChallenge(c.Request.Context(), userID, challengeID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Entries handles GET /api/challenges/:id/entries.
func (h *ChallengeHandler) Entries(c *gin.Context) {
	challengeID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	entries, err := h.facade.ChallengeEntries(c.Request.Context(), challengeID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ChallengeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, dto.ToChallengeEntryResponse(entry))
	}
	c.JSON(http.StatusOK, response)
}

// Leaderboard handles GET /api/challenges/:id/leaderboard.
func (h *ChallengeHandler) Leaderboard(c *gin.Context) {
	challengeID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	rows, err := h.facade.ChallengeLeaderboard(c.Request.Context(), challengeID, limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.LeaderboardRowResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, dto.ToLeaderboardRowResponse(row))
	}
	c.JSON(http.StatusOK, response)
}
