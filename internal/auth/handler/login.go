package handler

import (
	"net/http"

	"session-auth/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	issued, err := h.service.Login(
		c.Request.Context(),
		req.Email,
		req.Password,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.cookie.Write(c.Writer, issued.SessionID, issued.ExpiresAt); err != nil {
		h.respondError(c, err)
		return
	}

	logger.Info("login succeeded", map[string]any{
		"user_id": issued.UserID,
		"ip":      c.ClientIP(),
	})

	respond(c, http.StatusOK, msgLoggedIn)
}
