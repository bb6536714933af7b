package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

var now = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func newOperator(t *testing.T) *Operator {
	t.Helper()
	op, err := NewOperator(id.OperatorID(uuid.New()), Fields{
		Username: "  Maria.Silva ",
		Password: "s3cret-pass",
		Role:     id.RoleOperator,
	}, now)
	require.NoError(t, err)
	return op
}

func TestNewOperator(t *testing.T) {
	op := newOperator(t)
	assert.Equal(t, "maria.silva", op.Username)
	assert.True(t, op.Active)
	assert.NotEqual(t, "s3cret-pass", op.PasswordHash)

	ok, err := op.CheckPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = op.CheckPassword("wrong-pass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewOperatorValidation(t *testing.T) {
	cases := []struct {
		name  string
		f     Fields
		field string
	}{
		{"short username", Fields{Username: "ab", Password: "long-enough", Role: id.RoleViewer}, "username"},
		{"spaces in username", Fields{Username: "maria silva", Password: "long-enough", Role: id.RoleViewer}, "username"},
		{"unknown role", Fields{Username: "maria", Password: "long-enough", Role: "OWNER"}, "role"},
		{"short password", Fields{Username: "maria", Password: "short", Role: id.RoleViewer}, "password"},
		{"long password", Fields{Username: "maria", Password: string(make([]byte, 73)), Role: id.RoleViewer}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOperator(id.OperatorID(uuid.New()), tc.f, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tc.field, dErrors.FieldOf(err))
		})
	}
}

func TestApply(t *testing.T) {
	op := newOperator(t)

	t.Run("invalid change leaves the operator untouched", func(t *testing.T) {
		bad := id.Role("OWNER")
		inactive := false
		err := op.Apply(Changes{Role: &bad, Active: &inactive}, now.Add(time.Hour))
		require.Error(t, err)
		assert.Equal(t, id.RoleOperator, op.Role)
		assert.True(t, op.Active)
		assert.Equal(t, now, op.UpdatedAt)
	})

	t.Run("partial update", func(t *testing.T) {
		role := id.RoleAdmin
		password := "another-pass"
		require.NoError(t, op.Apply(Changes{Role: &role, Password: &password}, now.Add(time.Hour)))
		assert.Equal(t, id.RoleAdmin, op.Role)
		assert.True(t, op.CanManage())
		ok, err := op.CheckPassword(password)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("inactive operators manage nothing", func(t *testing.T) {
		inactive := false
		require.NoError(t, op.Apply(Changes{Active: &inactive}, now))
		assert.False(t, op.CanManage())
	})
}

func TestChangesIsEmpty(t *testing.T) {
	assert.True(t, Changes{}.IsEmpty())
	su := true
	assert.False(t, Changes{Superuser: &su}.IsEmpty())
}
