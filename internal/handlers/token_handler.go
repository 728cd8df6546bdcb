package handlers

import (
	"net/http"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

// TokenHandler handles redemption token HTTP requests
type TokenHandler struct {
	rewardService *services.RewardService
}

// NewTokenHandler creates a new TokenHandler
func NewTokenHandler(rewardService *services.RewardService) *TokenHandler {
	return &TokenHandler{
		rewardService: rewardService,
	}
}

// CreateToken handles POST /tokens (admin only)
func (h *TokenHandler) CreateToken(c *gin.Context) {
	var req struct {
		Token     string    `json:"token" binding:"required"`
		ExpiresAt time.Time `json:"expiresAt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.rewardService.CreateToken(c.Request.Context(), req.Token, req.ExpiresAt, c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, token)
}

// RedeemToken handles POST /tokens/redeem.
// The response keeps the legacy boolean `valid` field and adds the tagged
// outcome so clients can tell expired from unknown when they care.
func (h *TokenHandler) RedeemToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.rewardService.RedeemToken(c.Request.Context(), req.Token)

	status := http.StatusOK
	if outcome == services.RedeemUnavailable {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"valid":   outcome == services.RedeemOK,
		"outcome": outcome.String(),
	})
}
