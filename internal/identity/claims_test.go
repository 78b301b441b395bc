package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromHeaders(t *testing.T) {
	claims := FromHeaders(map[string]string{
		"X-User-Id":    " user-123 ",
		"X-User-Email": "dev@example.com",
	})

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.False(t, claims.Anonymous())
}

func TestFromHeadersCaseInsensitive(t *testing.T) {
	claims := FromHeaders(map[string]string{"x-user-id": "user-123"})
	assert.Equal(t, "user-123", claims.UserID)
}

func TestFromHeadersAnonymous(t *testing.T) {
	claims := FromHeaders(map[string]string{})
	assert.True(t, claims.Anonymous())
}
