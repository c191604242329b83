package jwt

import "github.com/google/uuid"

type ValidatedClaims struct {
	UserID uuid.UUID
	Role   string
	Email  string
	Phone  string
}

func parseUserID(v string) (uuid.UUID, error) {
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
