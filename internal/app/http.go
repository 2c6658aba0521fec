package app

import (
	"context"
	"net/http"
	"time"

	"session-auth/internal/auth"
	"session-auth/internal/auth/credentials"
	"session-auth/internal/auth/handler"
	"session-auth/internal/config"
	"session-auth/internal/middleware"
	"session-auth/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(cfg config.Config, infra *Infra) (*gin.Engine, error) {

	// ----------------------------
	// Dependencies
	// ----------------------------

	authService := auth.NewService(
		infra.Users,
		credentials.NewBcryptHasher(cfg.BcryptCost),
		infra.Sessions,
		auth.WithSessionTTL(cfg.SessionTTL),
		auth.WithStoreTimeout(cfg.StoreTimeout),
	)

	cookie, err := session.NewCookie(cfg.SessionSecret, session.CookieOptions{
		Name:     cfg.CookieName,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		HttpOnly: cfg.CookieHTTPOnly,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   authService.SessionTTL(),
	})
	if err != nil {
		return nil, err
	}

	authHandler := handler.NewHandler(authService, cookie, cfg.IsDevelopment())
	authMiddleware := middleware.NewAuthMiddleware(authService, cookie)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", healthHandler(infra.checks, cfg.StoreTimeout))

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		userID, _ := middleware.UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"status":  true,
		})
	})

	return router, nil
}

func healthHandler(checks []healthcheck, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		results := gin.H{}
		healthy := true
		for _, hc := range checks {
			if err := hc.check(ctx); err != nil {
				healthy = false
				results[hc.name] = "down"
				continue
			}
			results[hc.name] = "up"
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": results})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": results})
	}
}
