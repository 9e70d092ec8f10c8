package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/auth"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
)

const identityKey = "identity"

// Identity is the authenticated caller as seen by handlers. It is the only
// place a caller id or role may come from; request bodies never override it.
type Identity struct {
	UserID string
	Role   authz.Role
	Email  string
}

// Context returns the authz context for this caller; handlers fill in the
// ownership fields relevant to the action.
func (id Identity) Context() authz.Context {
	return authz.Context{Role: id.Role, CallerID: id.UserID}
}

// JWTAuth validates the bearer token and stashes the caller identity.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := auth.ParseValidate(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(identityKey, Identity{
			UserID: claims.Sub,
			Role:   authz.Role(claims.Role),
			Email:  claims.Email,
		})
		c.Next()
	}
}

// CurrentIdentity returns the identity set by JWTAuth. The zero Identity
// (empty role) matches no policy grant, so an unauthenticated path through a
// handler still denies.
func CurrentIdentity(c *gin.Context) Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}
	}
	id, _ := v.(Identity)
	return id
}
