package handler

import (
	"strings"

	"amparo/internal/operator/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		return dErrors.NewField("username", "username is required")
	}
	if r.Password == "" {
		return dErrors.NewField("password", "password is required")
	}
	return nil
}

// CreateOperatorRequest is the body of POST /v1/operators.
type CreateOperatorRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Superuser bool   `json:"superuser"`

	fields models.Fields
}

func (r *CreateOperatorRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	role, err := id.ParseRole(r.Role)
	if err != nil {
		return err
	}
	r.fields = models.Fields{
		Username:  r.Username,
		Password:  r.Password,
		Role:      role,
		Superuser: r.Superuser,
	}
	return nil
}

func (r *CreateOperatorRequest) Fields() models.Fields {
	return r.fields
}

// UpdateOperatorRequest is the body of PATCH /v1/operators/{id}. Omitted
// fields are left unchanged.
type UpdateOperatorRequest struct {
	Role      *string `json:"role"`
	Superuser *bool   `json:"superuser"`
	Active    *bool   `json:"active"`
	Password  *string `json:"password"`

	changes models.Changes
}

func (r *UpdateOperatorRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	c := models.Changes{Superuser: r.Superuser, Active: r.Active, Password: r.Password}
	if r.Role != nil {
		role, err := id.ParseRole(*r.Role)
		if err != nil {
			return err
		}
		c.Role = &role
	}
	if c.IsEmpty() {
		return dErrors.New(dErrors.CodeBadRequest, "no changes requested")
	}
	r.changes = c
	return nil
}

func (r *UpdateOperatorRequest) Changes() models.Changes {
	return r.changes
}
