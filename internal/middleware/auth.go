package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-queue/internal/clock"
	"github.com/BruksfildServices01/salon-queue/internal/config"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

const (
	ContextUserID  = "userID"
	ContextIsAdmin = "isAdmin"

	TokenTTL = 7 * 24 * time.Hour
)

// --------- Tokens ---------

func GenerateToken(cfg *config.Config, u *models.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":     u.ID,
		"isAdmin": u.IsAdmin,
		"exp":     now.Add(TokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// parseToken checks exp against clk, the clock tokens are issued on.
func parseToken(cfg *config.Config, clk clock.Clock, tokenString string) (string, bool, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(clk.Now))
	if err != nil || !token.Valid {
		return "", false, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false, jwt.ErrTokenInvalidClaims
	}
	isAdmin, _ := claims["isAdmin"].(bool)

	return sub, isAdmin, nil
}

// tokenFrom prefers the auth cookie, then a Bearer header.
func tokenFrom(c *gin.Context, cfg *config.Config) string {
	if v, err := c.Cookie(cfg.AuthCookieName); err == nil && v != "" {
		return v
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// --------- Cookies ---------

func SetAuthCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.AuthCookieName, token, int(TokenTTL.Seconds()), "/", "", cfg.IsProduction(), true)
}

func ClearAuthCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.AuthCookieName, "", -1, "/", "", cfg.IsProduction(), true)
}

// --------- Middleware ---------

func AuthMiddleware(cfg *config.Config, clk clock.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFrom(c, cfg)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "not_authenticated", "message": "Not authenticated."})
			return
		}

		userID, isAdmin, err := parseToken(cfg, clk, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token", "message": "Invalid or expired session."})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextIsAdmin, isAdmin)
		c.Next()
	}
}

// OptionalAuth identifies the caller when it can and never rejects.
func OptionalAuth(cfg *config.Config, clk clock.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := tokenFrom(c, cfg); raw != "" {
			if userID, isAdmin, err := parseToken(cfg, clk, raw); err == nil {
				c.Set(ContextUserID, userID)
				c.Set(ContextIsAdmin, isAdmin)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error_code": "admin_required", "message": "Admin access required."})
			return
		}
		c.Next()
	}
}

// --------- Context helpers ---------

func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

func Actor(c *gin.Context) user.Actor {
	return user.Actor{
		ID:      c.GetString(ContextUserID),
		IsAdmin: c.GetBool(ContextIsAdmin),
	}
}
