package handlers

import (
	"net/http"
	"strconv"

	"github.com/P-CIV/ecocycle-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

// AgentHandler handles agent-related HTTP requests
type AgentHandler struct {
	agentService *services.AgentService
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(agentService *services.AgentService) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
	}
}

// ProvisionAgent handles POST /agents
func (h *AgentHandler) ProvisionAgent(c *gin.Context) {
	var req services.ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.agentService.Provision(c.Request.Context(), req)
	switch result {
	case services.ProvisionComplete:
		c.JSON(http.StatusCreated, gin.H{"success": true, "uid": req.UID})
	case services.ProvisionPartial:
		// The users patch went through but a later write failed;
		// re-running the provisioning for this UID is safe.
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"partial": true,
			"error":   "Provisioning incomplete, retry to finish",
		})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "User account not found, register before provisioning",
		})
	}
}

// GetAgentByID handles GET /agents/:uid
func (h *AgentHandler) GetAgentByID(c *gin.Context) {
	uid := c.Param("uid")

	agent, err := h.agentService.GetAgentByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, agent)
}

// GetAllAgents handles GET /agents
func (h *AgentHandler) GetAllAgents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	agents, err := h.agentService.GetAllAgents(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get agents: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, agents)
}

// GetAgentStats handles GET /agents/:uid/statistiques
func (h *AgentHandler) GetAgentStats(c *gin.Context) {
	uid := c.Param("uid")

	stats, err := h.agentService.GetAgentStats(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Statistics not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetAgentCount handles GET /agents/count
func (h *AgentHandler) GetAgentCount(c *gin.Context) {
	count, err := h.agentService.GetAgentCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get agent count: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
