package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/amellouk/souq/internal/domain"
)

const identityKey = "identity"

// identity extracts the verified (userId, role) pair from the Authorization
// header. With required set, requests without a valid token are rejected;
// otherwise the handler simply runs without a caller identity.
func (s *Server) identity(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			}
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}
		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id claim missing"})
			return
		}
		name, _ := claims["name"].(string)
		role, _ := claims["role"].(string)
		ident := domain.Identity{UserID: userID, Name: name, Role: domain.Role(role)}
		if ident.Role == "" {
			ident.Role = domain.RoleVisitor
		}
		c.Set(identityKey, ident)
	}
}

func (s *Server) requireAdmin(c *gin.Context) {
	ident := identityFrom(c)
	if ident == nil || !ident.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator role required"})
	}
}

func identityFrom(c *gin.Context) *domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, ok := v.(domain.Identity)
	if !ok {
		return nil
	}
	return &ident
}
