package search

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCursor is returned for any malformed, tampered, or mismatched
// cursor. Decode fails closed; it never guesses.
var ErrInvalidCursor = errors.New("invalid cursor")

// CursorCodec signs and verifies opaque pagination cursors. A cursor leaks
// nothing about the index beyond a position ordinal and a parameter hash.
type CursorCodec struct {
	secret []byte
}

type cursorPayload struct {
	Offset      int    `json:"o"`
	Fingerprint string `json:"f"`
	IssuedAt    int64  `json:"t"`
}

// NewCursorCodec creates a codec signing with the given secret
func NewCursorCodec(secret string) *CursorCodec {
	return &CursorCodec{secret: []byte(secret)}
}

// Encode produces a URL-safe signed token for a result offset and the query
// fingerprint it belongs to.
func (c *CursorCodec) Encode(offset int, fingerprint string) (string, error) {
	payload, err := json.Marshal(cursorPayload{
		Offset:      offset,
		Fingerprint: fingerprint,
		IssuedAt:    time.Now().Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + c.sign(body), nil
}

// Decode verifies the token signature and returns the offset and
// fingerprint it carries. Any failure is ErrInvalidCursor.
func (c *CursorCodec) Decode(token string) (int, string, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok {
		return 0, "", ErrInvalidCursor
	}

	if !hmac.Equal([]byte(c.sign(body)), []byte(sig)) {
		return 0, "", ErrInvalidCursor
	}

	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return 0, "", ErrInvalidCursor
	}

	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, "", ErrInvalidCursor
	}

	if payload.Offset < 0 || payload.Fingerprint == "" {
		return 0, "", ErrInvalidCursor
	}

	return payload.Offset, payload.Fingerprint, nil
}

func (c *CursorCodec) sign(body string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
