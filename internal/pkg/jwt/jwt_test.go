//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService("secret", time.Minute)
	p := auth.Principal{UserID: uuid.New(), Role: auth.RoleOrganizer, Email: "org@example.com", Phone: "+15550100"}

	token, err := svc.GenerateToken(p)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, &jwt.ValidatedClaims{
		UserID: p.UserID,
		Role:   "organizer",
		Email:  "org@example.com",
		Phone:  "+15550100",
	}, claims)
}

func TestService_ValidateTokenErrors(t *testing.T) {
	svc := jwt.NewService("secret", time.Minute)

	sign := func(method gojwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := gojwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := jwt.Claims{
		UserID: uuid.NewString(),
		Role:   "buyer",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	expired := valid
	expired.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-time.Minute))
	nilUser := valid
	nilUser.UserID = uuid.Nil.String()
	badUser := valid
	badUser.UserID = "not-a-uuid"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "expired", token: sign(gojwt.SigningMethodHS256, []byte("secret"), expired), wantErr: jwt.ErrExpiredToken},
		{name: "wrong secret", token: sign(gojwt.SigningMethodHS256, []byte("other"), valid), wantErr: jwt.ErrInvalidToken},
		{name: "unsigned", token: sign(gojwt.SigningMethodNone, gojwt.UnsafeAllowNoneSignatureType, valid), wantErr: jwt.ErrInvalidToken},
		{name: "nil user", token: sign(gojwt.SigningMethodHS256, []byte("secret"), nilUser), wantErr: jwt.ErrInvalidToken},
		{name: "malformed user", token: sign(gojwt.SigningMethodHS256, []byte("secret"), badUser), wantErr: jwt.ErrInvalidToken},
		{name: "garbage", token: "not.a.token", wantErr: jwt.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
