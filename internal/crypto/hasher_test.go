package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_CostSelection(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero selects default", in: 0, want: DefaultHashCost},
		{name: "below minimum is clamped", in: 1, want: bcrypt.MinCost},
		{name: "above maximum is clamped", in: 99, want: bcrypt.MaxCost},
		{name: "in range is kept", in: 6, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBcryptHasher(tt.in).(*bcryptHasher)
			assert.Equal(t, tt.want, h.cost)
		})
	}
}

func TestBcryptHasher_PasswordOpacity(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.NotContains(t, hash, "secret123")
	assert.True(t, h.Verify("secret123", hash))
	assert.False(t, h.Verify("wrong", hash))
	assert.False(t, h.Verify("", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	h1, err := h.Hash("pw1")
	require.NoError(t, err)
	h2, err := h.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, h.Verify("pw1", h1))
	assert.True(t, h.Verify("pw1", h2))
}

func TestBcryptHasher_VerifyMalformedHashReturnsFalse(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, stored := range []string{"", "not-a-hash", "$2a$", "secret123", strings.Repeat("$", 60)} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("secret123", stored))
		})
	}
}

func TestBcryptHasher_CostChangeKeepsOldHashesVerifiable(t *testing.T) {
	old := NewBcryptHasher(bcrypt.MinCost)
	hash, err := old.Hash("pw")
	require.NoError(t, err)

	upgraded := NewBcryptHasher(bcrypt.MinCost + 1)
	assert.True(t, upgraded.Verify("pw", hash))
	assert.True(t, upgraded.NeedsRehash(hash))
	assert.False(t, old.NeedsRehash(hash))
	assert.True(t, upgraded.NeedsRehash("garbage"))
}

func TestBcryptHasher_TooLongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// 37 two-byte runes: 74 bytes.
	_, err = h.Hash(strings.Repeat("é", 37))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := h.Hash(strings.Repeat("é", 36))
	require.NoError(t, err)
	assert.True(t, h.Verify(strings.Repeat("é", 36), hash))
}
