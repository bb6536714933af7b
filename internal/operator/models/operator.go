package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// ConstraintUsername is the unique index on operator usernames.
const ConstraintUsername = "operators_username_key"

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes; longer passwords are rejected.
	maxPasswordBytes = 72
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,39}$`)

// Operator is a staff account allowed to use the API.
//
// Invariants:
//   - Username is lower case and unique
//   - PasswordHash is a bcrypt hash, never the plaintext
//   - An inactive operator cannot log in
type Operator struct {
	ID           id.OperatorID
	Username     string
	PasswordHash string
	Role         id.Role
	Superuser    bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Fields is the attribute set of a new operator.
type Fields struct {
	Username  string
	Password  string
	Role      id.Role
	Superuser bool
}

// Changes is a partial update. Nil fields are left as they are.
type Changes struct {
	Role      *id.Role
	Superuser *bool
	Active    *bool
	Password  *string
}

// IsEmpty reports whether c changes nothing.
func (c Changes) IsEmpty() bool {
	return c.Role == nil && c.Superuser == nil && c.Active == nil && c.Password == nil
}

// NormalizeUsername lower-cases and trims a login name.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NewOperator validates f and hashes the password.
func NewOperator(operatorID id.OperatorID, f Fields, now time.Time) (*Operator, error) {
	username := NormalizeUsername(f.Username)
	if !usernamePattern.MatchString(username) {
		return nil, dErrors.NewField("username", "username must be 3 to 40 lower case letters, digits, dots, dashes or underscores")
	}
	if !f.Role.IsValid() {
		return nil, dErrors.NewField("role", "role must be one of VIEWER, OPERATOR, SUPERVISOR, ADMIN")
	}
	hash, err := HashPassword(f.Password)
	if err != nil {
		return nil, err
	}
	return &Operator{
		ID:           operatorID,
		Username:     username,
		PasswordHash: hash,
		Role:         f.Role,
		Superuser:    f.Superuser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Apply merges c into o. On failure o is left unchanged.
func (o *Operator) Apply(c Changes, now time.Time) error {
	next := *o
	if c.Role != nil {
		if !c.Role.IsValid() {
			return dErrors.NewField("role", "role must be one of VIEWER, OPERATOR, SUPERVISOR, ADMIN")
		}
		next.Role = *c.Role
	}
	if c.Superuser != nil {
		next.Superuser = *c.Superuser
	}
	if c.Active != nil {
		next.Active = *c.Active
	}
	if c.Password != nil {
		hash, err := HashPassword(*c.Password)
		if err != nil {
			return err
		}
		next.PasswordHash = hash
	}
	next.UpdatedAt = now
	*o = next
	return nil
}

// CanManage reports whether o may administer operator accounts.
func (o *Operator) CanManage() bool {
	return o.Active && (o.Superuser || o.Role.Allows(id.CapabilityManage))
}

// HashPassword validates the length rules and returns a bcrypt hash.
func HashPassword(password string) (string, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return "", dErrors.NewField("password", fmt.Sprintf("password must have at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return "", dErrors.NewField("password", "password is too long")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches o's hash.
func (o *Operator) CheckPassword(password string) (bool, error) {
	return comparePassword(o.PasswordHash, password)
}

// placeholderHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
var placeholderHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// BurnComparison runs a comparison whose result is discarded.
func BurnComparison(password string) {
	_, _ = comparePassword(placeholderHash, password)
}

func comparePassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("compare password: %w", err)
}
