package access

import (
	"errors"
	"fmt"
	"strings"

	"go-sales-territory/internal/territory"

	"github.com/google/uuid"
)

var (
	// ErrScopeUnresolved means the principal's territory assignment is missing
	// or invalid. It is a data-quality problem, distinct from an empty result.
	ErrScopeUnresolved = errors.New("territory assignment is missing or invalid")
	// ErrTerritoryMismatch rejects a write against a client outside the
	// delegate's territory.
	ErrTerritoryMismatch = errors.New("client is outside the representative's territory")
	ErrUnknownRole       = errors.New("unknown role")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDelegate Role = "delegate"
)

// ParseRole matches stored role codes case-insensitively.
func ParseRole(code string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "admin":
		return RoleAdmin, nil
	case "delegate":
		return RoleDelegate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, code)
}

// RawIdentity is what authentication hands over once credentials or a token
// have been verified: the stored attributes of the representative, unchecked.
type RawIdentity struct {
	ID       uuid.UUID
	Username string
	RoleCode string
	Wilaya   string
}

// Principal is the normalized identity every authorization decision uses.
type Principal struct {
	ID           uuid.UUID        `json:"id"`
	Username     string           `json:"username"`
	Role         Role             `json:"role"`
	Territory    territory.Wilaya `json:"territory"`
	RawTerritory string           `json:"raw_territory"`
}

// NormalizePrincipal turns a verified identity into a Principal. An unknown
// role is an error. A territory that does not parse is not: the principal is
// tagged with territory.Invalid and territory-scoped reads fail later with
// ErrScopeUnresolved.
func NormalizePrincipal(raw RawIdentity) (Principal, error) {
	role, err := ParseRole(raw.RoleCode)
	if err != nil {
		return Principal{}, err
	}

	w, err := territory.Parse(raw.Wilaya)
	if err != nil {
		w = territory.Invalid
	}

	return Principal{
		ID:           raw.ID,
		Username:     raw.Username,
		Role:         role,
		Territory:    w,
		RawTerritory: raw.Wilaya,
	}, nil
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) HasValidTerritory() bool {
	return p.Territory.Valid()
}
