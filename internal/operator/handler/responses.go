package handler

import (
	"time"

	"amparo/internal/operator/models"
	"amparo/internal/operator/service"
)

type OperatorResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Superuser bool      `json:"superuser"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   time.Time         `json:"expires_at"`
	Operator    *OperatorResponse `json:"operator"`
}

type ListResponse struct {
	Operators []*OperatorResponse `json:"operators"`
	Count     int                 `json:"count"`
}

func toResponse(op *models.Operator) *OperatorResponse {
	return &OperatorResponse{
		ID:        op.ID.String(),
		Username:  op.Username,
		Role:      op.Role.String(),
		Superuser: op.Superuser,
		Active:    op.Active,
		CreatedAt: op.CreatedAt,
	}
}

func toLoginResponse(s *service.Session) *LoginResponse {
	return &LoginResponse{
		AccessToken: s.Token,
		TokenType:   "Bearer",
		ExpiresAt:   s.ExpiresAt,
		Operator:    toResponse(s.Operator),
	}
}

func toListResponse(list []*models.Operator) *ListResponse {
	out := make([]*OperatorResponse, len(list))
	for i, op := range list {
		out[i] = toResponse(op)
	}
	return &ListResponse{Operators: out, Count: len(out)}
}
