package handler

import (
	"errors"
	"net/http"

	"session-auth/internal/auth"
	"session-auth/internal/logger"
	"session-auth/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	msgAuthenticated    = "User is authenticated."
	msgNotAuthenticated = "Not authenticated!"
	msgRegistered       = "Registered successfully."
	msgLoggedIn         = "Logged in successfully."
	msgUserExists       = "User already exists."
	msgInvalidCreds     = "Invalid email or password."
	msgInvalidBody      = "Invalid request body."
	msgInternal         = "Something went wrong. Please try again later."
)

type Handler struct {
	service      *auth.Service
	cookie       *session.Cookie
	exposeErrors bool
}

// NewHandler wires the HTTP boundary. exposeErrors includes internal error
// detail in 5xx responses and must stay off in production.
func NewHandler(
	service *auth.Service,
	cookie *session.Cookie,
	exposeErrors bool,
) *Handler {
	return &Handler{
		service:      service,
		cookie:       cookie,
		exposeErrors: exposeErrors,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/isLoggedIn", h.IsLoggedIn)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func respond(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"message": message,
		"status":  code < http.StatusBadRequest,
	})
}

// respondError is the single mapping from service errors to HTTP results.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrValidation):
		respond(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrDuplicateUser):
		respond(c, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, auth.ErrInvalidCredentials):
		respond(c, http.StatusBadRequest, msgInvalidCreds)
	case errors.Is(err, auth.ErrNotAuthenticated):
		respond(c, http.StatusBadRequest, msgNotAuthenticated)
	default:
		logger.Error("request failed", map[string]any{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err.Error(),
		})

		message := msgInternal
		if h.exposeErrors {
			message = err.Error()
		}
		respond(c, http.StatusInternalServerError, message)
	}
}
