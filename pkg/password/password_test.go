package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	digest, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", digest)

	assert.True(t, h.Verify("pw1", digest))
	assert.False(t, h.Verify("pw2", digest))
	assert.False(t, h.Verify("pw1", "not-a-digest"))
}

func TestHashIsSalted(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same", a))
	assert.True(t, h.Verify("same", b))
}

func TestHashTooLong(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestCostClamping(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		expected int
	}{
		{"below minimum", 1, bcrypt.MinCost},
		{"minimum", bcrypt.MinCost, bcrypt.MinCost},
		{"explicit", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHasher(tt.cost)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, h.Cost())

			digest, err := h.Hash("pw")
			require.NoError(t, err)
			cost, err := bcrypt.Cost([]byte(digest))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cost)
		})
	}
}

func TestVerifyDummy(t *testing.T) {
	h := newTestHasher(t)
	assert.False(t, h.VerifyDummy("grid-dummy-password"))
	assert.False(t, h.VerifyDummy("anything"))
}
