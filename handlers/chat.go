package handlers

import (
	"net/http"

	"bookly/models"
	"bookly/services/agent"
	"bookly/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler is the request/response boundary in front of the booking
// pipeline.
type ChatHandler struct {
	Agent  agent.Service
	Logger *zap.Logger
}

func NewChatHandler(agentSvc agent.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Agent: agentSvc, Logger: logger}
}

// HandleChat feeds one user message into the pipeline's propose phase. The
// session id ties the later confirm call to this proposal; one is minted
// when the client doesn't supply it.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	reply := h.Agent.ProcessMessage(c.Request.Context(), sessionID, req.Message)
	c.JSON(http.StatusOK, models.ChatResponse{
		Response:  reply,
		SessionID: sessionID,
		Status:    "success",
	})
}

// HandleConfirm commits a previously proposed booking.
func (h *ChatHandler) HandleConfirm(c *gin.Context) {
	var req models.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid confirm request", err.Error())
		return
	}

	reply := h.Agent.ConfirmPending(c.Request.Context(), req.SessionID, req.Slot)
	c.JSON(http.StatusOK, models.ChatResponse{
		Response:  reply,
		SessionID: req.SessionID,
		Status:    "success",
	})
}
