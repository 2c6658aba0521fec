package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAuth adapts the net/http AuthMiddleware to Gin.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false

		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})

		auth.RequireAuth(next).ServeHTTP(c.Writer, c.Request)

		// the auth middleware already wrote the rejection
		if !passed {
			c.Abort()
		}
	}
}
