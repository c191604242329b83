package auth

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleBuyer:     1,
	RoleOrganizer: 2,
	RoleAdmin:     3,
}

func NewRole(v string) (Role, error) {
	r := Role(v)
	if _, ok := roleRank[r]; !ok {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) AtLeast(min Role) bool {
	have, ok := roleRank[r]
	want, wantOK := roleRank[min]
	return ok && wantOK && have >= want
}

// Principal is the caller identity carried by the bearer token.
type Principal struct {
	UserID uuid.UUID
	Role   Role
	Email  string
	Phone  string
}
