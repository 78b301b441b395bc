package identity

import (
	"net/http"
	"strings"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
)

// Claims is the caller identity forwarded by the API gateway after it has
// verified the access token. Empty claims mean an anonymous request.
type Claims struct {
	UserID string
	Email  string
}

func (c Claims) Anonymous() bool {
	return c.UserID == ""
}

// FromHeaders extracts claims from forwarded request headers, tolerating
// any header casing the proxy uses.
func FromHeaders(headers map[string]string) Claims {
	return Claims{
		UserID: strings.TrimSpace(headerValue(headers, HeaderUserID)),
		Email:  strings.TrimSpace(headerValue(headers, HeaderUserEmail)),
	}
}

func headerValue(headers map[string]string, key string) string {
	if v, ok := headers[key]; ok {
		return v
	}
	canonical := http.CanonicalHeaderKey(key)
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == canonical {
			return v
		}
	}
	return ""
}
