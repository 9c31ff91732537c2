package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/restobook/booking-api/internal/config"
)

const (
	ContextUserID       = "userID"
	ContextRestaurantID = "restaurantID"
	ContextRole         = "role"

	RoleUser       = "user"
	RoleRestaurant = "restaurant"
)

func parseBearerToken(c *gin.Context, cfg *config.Config) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
		return nil, false
	}

	tokenString := parts[1]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
		return nil, false
	}

	return claims, true
}

// UserAuthMiddleware guards diner endpoints.
func UserAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c, cfg)
		if !ok {
			return
		}

		sub, ok1 := claims["sub"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || role != RoleUser {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextUserID, uint(sub))
		c.Set(ContextRole, role)

		c.Next()
	}
}

// RestaurantAuthMiddleware guards operator endpoints.
func RestaurantAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c, cfg)
		if !ok {
			return
		}

		sub, ok1 := claims["sub"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || role != RoleRestaurant {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextRestaurantID, uint(sub))
		c.Set(ContextRole, role)

		c.Next()
	}
}

// OptionalUserMiddleware resolves a diner identity when a token is
// present but lets anonymous requests through. Branch search uses it
// for the saved-first ranking key.
func OptionalUserMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(float64); ok {
				if role, _ := claims["role"].(string); role == RoleUser {
					c.Set(ContextUserID, uint(sub))
					c.Set(ContextRole, role)
				}
			}
		}

		c.Next()
	}
}
