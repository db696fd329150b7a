package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinAuthenticate adapts the net/http Authenticate middleware to Gin.
// Auth decisions stay in the framework-agnostic core; this bridge only
// moves the request across.
func GinAuthenticate(auth *AuthMiddleware) gin.HandlerFunc {
	return bridge(auth.Authenticate)
}

// GinRequireClaim adapts RequireClaim to Gin. Chain it after
// GinAuthenticate.
func GinRequireClaim(auth *AuthMiddleware, name string) gin.HandlerFunc {
	return bridge(auth.RequireClaim(name))
}

func bridge(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		mw(next).ServeHTTP(c.Writer, c.Request)

		// If the middleware already wrote the response, stop the Gin chain
		if c.Writer.Written() {
			c.Abort()
		}
	}
}
