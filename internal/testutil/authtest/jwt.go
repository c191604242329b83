//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/pkg/config"
	"ticket-allocator/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role auth.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.AccessTokenDuration)
	token, err := service.GenerateToken(auth.Principal{UserID: userID, Role: role})
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) GenerateTokenWithContact(t *testing.T, userID uuid.UUID, role auth.Role, email string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.AccessTokenDuration)
	token, err := service.GenerateToken(auth.Principal{UserID: userID, Role: role, Email: email})
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role auth.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, -time.Minute)
	token, err := service.GenerateToken(auth.Principal{UserID: userID, Role: role})
	require.NoError(t, err)
	return token
}
