package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollecteHandler handles collection event HTTP requests
type CollecteHandler struct {
	collecteService *services.CollecteService
}

// NewCollecteHandler creates a new CollecteHandler
func NewCollecteHandler(collecteService *services.CollecteService) *CollecteHandler {
	return &CollecteHandler{
		collecteService: collecteService,
	}
}

// CreateCollecte handles POST /collectes
func (h *CollecteHandler) CreateCollecte(c *gin.Context) {
	var collecte models.Collecte
	if err := c.ShouldBindJSON(&collecte); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if collecte.AgentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agentId is required"})
		return
	}

	if err := h.collecteService.CreateCollecte(c.Request.Context(), &collecte); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collecte: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, collecte)
}

// ProcessCollecte handles POST /collectes/:id/process
func (h *CollecteHandler) ProcessCollecte(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req struct {
		Status models.CollecteStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.collecteService.ProcessCollecte(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrCollecteAlreadyProcessed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process collecte: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": result != services.StatsFailed,
		"partial": result == services.StatsPartial,
	})
}

// GetCollecteByID handles GET /collectes/:id
func (h *CollecteHandler) GetCollecteByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	collecte, err := h.collecteService.GetCollecteByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collecte not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, collecte)
}

// GetCollectesByAgent handles GET /collectes/agent/:uid
func (h *CollecteHandler) GetCollectesByAgent(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	collectes, err := h.collecteService.GetCollectesByAgent(c.Request.Context(), c.Param("uid"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get collectes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, collectes)
}

// GetCollectesByStatus handles GET /collectes/status/:status
func (h *CollecteHandler) GetCollectesByStatus(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	status := models.CollecteStatus(c.Param("status"))
	collectes, err := h.collecteService.GetCollectesByStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get collectes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, collectes)
}

// GetCollecteCount handles GET /collectes/count
func (h *CollecteHandler) GetCollecteCount(c *gin.Context) {
	count, err := h.collecteService.GetCollecteCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get collecte count: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
