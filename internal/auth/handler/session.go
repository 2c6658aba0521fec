package handler

import (
	"net/http"

	"session-auth/internal/auth"

	"github.com/gin-gonic/gin"
)

func (h *Handler) IsLoggedIn(c *gin.Context) {
	sessionID, _ := h.cookie.Read(c.Request)

	status, err := h.service.CheckSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !status.Authenticated {
		h.respondError(c, auth.ErrNotAuthenticated)
		return
	}

	respond(c, http.StatusOK, msgAuthenticated)
}
