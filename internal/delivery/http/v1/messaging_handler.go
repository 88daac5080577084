package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type MessagingHandler struct {
	messagingUC domain.MessagingUsecase
}

// NewMessagingHandler registers conversation routes. The legacy group keeps
// the old client path /api/conversations/list working.
func NewMessagingHandler(protected *gin.RouterGroup, legacy *gin.RouterGroup, messagingUC domain.MessagingUsecase) {
	handler := &MessagingHandler{messagingUC: messagingUC}

	conversations := protected.Group("/conversations")
	{
		conversations.POST("", handler.Start)
		conversations.GET("", handler.List)
		conversations.GET("/:id/messages", handler.ListMessages)
		conversations.POST("/:id/messages", handler.Send)
	}

	legacy.GET("/conversations/list", handler.List)
}

type StartConversationRequest struct {
	OtherUserID string  `json:"other_user_id" binding:"required"`
	JobID       *string `json:"job_id"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Start godoc
// @Summary      Start or resume a conversation
// @Description  Returns the existing thread for the participant pair and optional job, creating it when absent.
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Param        conversation  body      StartConversationRequest  true  "Counterpart and optional job"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /conversations [post]
// @Security     BearerAuth
func (h *MessagingHandler) Start(c *gin.Context) {
	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	conv, err := h.messagingUC.StartConversation(c.Request.Context(), userID, role, req.OtherUserID, req.JobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Conversation ready", conv)
}

// List godoc
// @Summary      List conversations
// @Description  Returns the caller's threads, most recent activity first, with the counterpart's name resolved.
// @Tags         messaging
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /conversations [get]
// @Security     BearerAuth
func (h *MessagingHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	convs, err := h.messagingUC.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Conversations retrieved", convs)
}

// ListMessages godoc
// @Summary      List messages in a conversation
// @Description  Returns messages ascending by creation time. Participants only.
// @Tags         messaging
// @Produce      json
// @Param        id        path      string  true   "Conversation ID"
// @Param        page      query     int     false  "Page number"
// @Param        page_size query     int     false  "Page size"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /conversations/{id}/messages [get]
// @Security     BearerAuth
func (h *MessagingHandler) ListMessages(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pagination(c)

	msgs, err := h.messagingUC.ListMessages(c.Request.Context(), userID, c.Param("id"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Messages retrieved", msgs)
}

// Send godoc
// @Summary      Send a message
// @Description  Appends a message to the conversation. Whitespace-only content is rejected.
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Conversation ID"
// @Param        message  body      SendMessageRequest  true  "Message content"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /conversations/{id}/messages [post]
// @Security     BearerAuth
func (h *MessagingHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	msg, err := h.messagingUC.SendMessage(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Message sent", msg)
}
