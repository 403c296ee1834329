package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIdentity_IsAuthenticated(t *testing.T) {
	assert.False(t, Anonymous.IsAuthenticated())
	assert.True(t, New(3, "alice").IsAuthenticated())
}

func TestFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing identity is anonymous", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Equal(t, Anonymous, FromGin(c))
	})

	t.Run("stored identity is returned", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		Set(c, New(9, "bob"))
		assert.Equal(t, Identity{UserID: 9, Username: "bob"}, FromGin(c))
	})

	t.Run("wrong type is anonymous", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(ginKey, "not an identity")
		assert.Equal(t, Anonymous, FromGin(c))
	})
}
