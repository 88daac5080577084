package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"
)

func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		// 3. WebSocket clients cannot set headers; accept a query token there
		if tokenString == "" && c.IsWebsocket() {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - Use Secret
				if cfg.SupabaseJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_KEY is not configured")
				}
				return []byte(cfg.SupabaseJWTSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - Use JWKS
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			slog.Debug("token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		// The JWT role claim is 'authenticated' or stale; the DB row is the
		// source of truth. A missing row means the user has not picked a role
		// yet, which role selection itself must be able to do.
		var role string
		if user, err := authUC.GetCurrentUser(c.Request.Context(), sub); err == nil {
			role = user.Role
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), role)

		c.Next()
	}
}

// RequireRole gates a route group to one role. It runs after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := c.GetString(string(domain.KeyUserRole))
		if current != role {
			response.Error(c, http.StatusForbidden, "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
