package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

var (
	signer = NewSigner("test-signing-key", "amparo-test", time.Hour)
	sub    = Subject{
		OperatorID: id.OperatorID(uuid.New()),
		Username:   "maria",
		Role:       id.RoleSupervisor,
	}
)

func TestIssueAndValidate(t *testing.T) {
	now := time.Now()
	issued, err := signer.Issue(sub, now)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Value)
	assert.NotEmpty(t, issued.JTI)
	assert.WithinDuration(t, now.Add(time.Hour), issued.ExpiresAt, time.Second)

	claims, err := signer.ValidateToken(issued.Value)
	require.NoError(t, err)
	assert.Equal(t, sub.OperatorID, claims.OperatorID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, id.RoleSupervisor, claims.Role)
	assert.False(t, claims.Superuser)
	assert.Equal(t, issued.JTI, claims.JTI)
	assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestEveryTokenHasItsOwnID(t *testing.T) {
	a, err := signer.Issue(sub, time.Now())
	require.NoError(t, err)
	b, err := signer.Issue(sub, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestValidateRejects(t *testing.T) {
	expired, err := signer.Issue(sub, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	foreign, err := NewSigner("other-key", "amparo-test", time.Hour).Issue(sub, time.Now())
	require.NoError(t, err)

	otherIssuer, err := NewSigner("test-signing-key", "someone-else", time.Hour).Issue(sub, time.Now())
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		OperatorID: sub.OperatorID.String(),
		Role:       "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "amparo-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":        "not-a-token",
		"expired":        expired.Value,
		"wrong key":      foreign.Value,
		"wrong issuer":   otherIssuer.Value,
		"unsigned token": none,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := signer.ValidateToken(raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		OperatorID: sub.OperatorID.String(),
		Role:       "OWNER",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "amparo-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = signer.ValidateToken(raw)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
