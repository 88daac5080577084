package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for the browser frontend.
//
// Allowed origins:
//   - the configured frontend origin (FRONTEND_URL)
//   - localhost dev servers, only outside release mode
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"
	frontendOrigin := strings.TrimSuffix(frontendURL, "/")

	devOrigins := map[string]bool{
		"http://localhost:3000": true,
		"http://127.0.0.1:3000": true,
		"http://localhost:3001": true,
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		var isAllowed bool
		switch {
		case origin == "":
			// Same-origin and non-browser requests carry no Origin header
			isAllowed = true
		case frontendOrigin != "" && origin == frontendOrigin:
			isAllowed = true
		case !isProduction && devOrigins[origin]:
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			c.Header("Access-Control-Max-Age", "86400")
		}
		// If not allowed, no CORS headers are sent and the browser blocks it

		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
