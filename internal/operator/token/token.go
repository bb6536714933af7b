// Package token issues and validates operator bearer tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/middleware/auth"
)

// Claims are the JWT claims of an access token.
type Claims struct {
	OperatorID string `json:"operator_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Superuser  bool   `json:"superuser,omitempty"`
	jwt.RegisteredClaims
}

// Issued is a signed token and the metadata needed to revoke it.
type Issued struct {
	Value     string
	JTI       string
	ExpiresAt time.Time
}

// Subject identifies the operator a token is issued for.
type Subject struct {
	OperatorID id.OperatorID
	Username   string
	Role       id.Role
	Superuser  bool
}

// Signer creates and validates HS256 tokens.
type Signer struct {
	key    []byte
	issuer string
	ttl    time.Duration
}

func NewSigner(key, issuer string, ttl time.Duration) *Signer {
	return &Signer{key: []byte(key), issuer: issuer, ttl: ttl}
}

// TTL is the lifetime of issued tokens.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for sub valid from now for the signer's TTL.
func (s *Signer) Issue(sub Subject, now time.Time) (*Issued, error) {
	jti := uuid.NewString()
	expiresAt := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		OperatorID: sub.OperatorID.String(),
		Username:   sub.Username,
		Role:       sub.Role.String(),
		Superuser:  sub.Superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.OperatorID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        jti,
		},
	})
	signed, err := t.SignedString(s.key)
	if err != nil {
		return nil, err
	}
	return &Issued{Value: signed, JTI: jti, ExpiresAt: expiresAt}, nil
}

// Parse verifies the signature, issuer and expiry of raw.
func (s *Signer) Parse(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.key, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// ValidateToken implements auth.JWTValidator.
func (s *Signer) ValidateToken(raw string) (*auth.JWTClaims, error) {
	claims, err := s.Parse(raw)
	if err != nil {
		return nil, err
	}
	operatorID, err := id.ParseOperatorID(claims.OperatorID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	role, err := id.ParseRole(claims.Role)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	out := &auth.JWTClaims{
		OperatorID: operatorID,
		Username:   claims.Username,
		Role:       role,
		Superuser:  claims.Superuser,
		JTI:        claims.ID,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
