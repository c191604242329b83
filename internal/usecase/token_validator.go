package usecase

import (
	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (auth.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (auth.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return auth.Principal{}, err
	}

	role, err := auth.NewRole(claims.Role)
	if err != nil {
		return auth.Principal{}, err
	}

	return auth.Principal{
		UserID: claims.UserID,
		Role:   role,
		Email:  claims.Email,
		Phone:  claims.Phone,
	}, nil
}
