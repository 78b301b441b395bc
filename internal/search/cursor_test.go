package search

import (
	"strings"
	"testing"

	"jobfinder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	codec := NewCursorCodec("test-secret")

	cases := []struct {
		name   string
		offset int
		fp     string
	}{
		{"first page", 0, "abc123"},
		{"deep page", 4200, "abc123"},
		{"long fingerprint", 20, strings.Repeat("f", 64)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := codec.Encode(tc.offset, tc.fp)
			require.NoError(t, err)

			offset, fp, err := codec.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tc.offset, offset)
			assert.Equal(t, tc.fp, fp)
		})
	}
}

func TestCursorIsURLSafe(t *testing.T) {
	codec := NewCursorCodec("test-secret")

	token, err := codec.Encode(17, "deadbeef")
	require.NoError(t, err)

	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}

func TestCursorDecodeRejectsGarbage(t *testing.T) {
	codec := NewCursorCodec("test-secret")

	for _, token := range []string{
		"",
		"not-a-cursor",
		"a.b",
		"%%%.%%%",
		"eyJvIjowfQ", // body with no signature separator content
	} {
		_, _, err := codec.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidCursor, "token %q", token)
	}
}

func TestCursorDecodeRejectsTampering(t *testing.T) {
	codec := NewCursorCodec("test-secret")

	token, err := codec.Encode(3, "fp-1")
	require.NoError(t, err)

	t.Run("flipped payload byte", func(t *testing.T) {
		tampered := "A" + token[1:]
		_, _, err := codec.Decode(tampered)
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})

	t.Run("different signing secret", func(t *testing.T) {
		other := NewCursorCodec("other-secret")
		_, _, err := other.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})
}

func TestFingerprintIsStable(t *testing.T) {
	remote := true
	min := 50000

	a := domain.SearchFilter{Query: "Go Engineer", Location: "Berlin", Remote: &remote, MinSalary: &min}
	b := domain.SearchFilter{Query: "go engineer", Location: "berlin", Remote: &remote, MinSalary: &min}

	// Case and surrounding whitespace normalize away.
	assert.Equal(t, Fingerprint(&a), Fingerprint(&b))
}

func TestFingerprintDistinguishesFilters(t *testing.T) {
	a := domain.SearchFilter{Query: "go"}
	b := domain.SearchFilter{Query: "go", Location: "Berlin"}
	c := domain.SearchFilter{Location: "Berlin"}

	assert.NotEqual(t, Fingerprint(&a), Fingerprint(&b))
	assert.NotEqual(t, Fingerprint(&b), Fingerprint(&c))
}
