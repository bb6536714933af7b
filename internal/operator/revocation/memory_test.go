package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amparo/pkg/platform/sentinel"
)

func TestInMemoryList(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	list := NewInMemoryList(WithClock(func() time.Time { return now }))

	revoked, err := list.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = list.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(time.Minute)
	revoked, err = list.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entries lapse with the token")

	require.NoError(t, list.Revoke(ctx, "jti-2", time.Minute))
	assert.NotContains(t, list.revoked, "jti-1")
}

func TestRevokeRejectsNonPositiveTTL(t *testing.T) {
	err := NewInMemoryList().Revoke(context.Background(), "jti", 0)
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}
