package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"

	"github.com/lromero/cajaclinic/internal/model"
)

// JWTAuth requires an active session: requests without a valid bearer token
// never reach a handler. Identity claims land in the gin context for the
// controllers to stamp onto records.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Sesión requerida"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Formato de autorización inválido"})
			c.Abort()
			return
		}

		secret := viper.GetString("jwt.secret")
		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Sesión inválida o expirada"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Sesión inválida o expirada"})
			c.Abort()
			return
		}
		userID, ok := claims["user_id"].(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Sesión inválida o expirada"})
			c.Abort()
			return
		}
		c.Set("userID", userID)
		if name, ok := claims["name"].(string); ok {
			c.Set("userName", name)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set("userRole", role)
		}

		c.Next()
	}
}

// AdminOnly gates the review and deletion endpoints on the admin role claim.
// With enforce false (the shipped default) a failed check is logged and the
// request still goes through — any authenticated user may audit. Tightening
// that is a config change, not a code change.
func AdminOnly(enforce bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.Role(c.GetString("userRole"))
		if role == model.RoleAdmin {
			c.Next()
			return
		}
		if enforce {
			c.JSON(http.StatusForbidden, gin.H{"code": 403, "msg": "Se requiere rol de administrador"})
			c.Abort()
			return
		}
		slog.Warn("non-admin accessing admin endpoint",
			"userID", c.GetString("userID"),
			"role", string(role),
			"path", c.FullPath())
		c.Next()
	}
}
