// Package identity carries the caller's authenticated identity from the
// transport layer into usecases as an explicit value.
package identity

import "github.com/gin-gonic/gin"

const ginKey = "identity"

// Identity is either an authenticated user or the anonymous caller.
// The zero value is Anonymous.
type Identity struct {
	UserID   uint
	Username string
}

// Anonymous is the identity of a caller without a valid access token.
var Anonymous = Identity{}

// New returns an authenticated identity.
func New(userID uint, username string) Identity {
	return Identity{UserID: userID, Username: username}
}

// IsAuthenticated reports whether the identity belongs to a signed-in user.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != 0
}

// Set stores id on the gin context.
func Set(c *gin.Context, id Identity) {
	c.Set(ginKey, id)
}

// FromGin returns the identity stored on the gin context, or Anonymous.
func FromGin(c *gin.Context) Identity {
	v, ok := c.Get(ginKey)
	if !ok {
		return Anonymous
	}
	id, ok := v.(Identity)
	if !ok {
		return Anonymous
	}
	return id
}
