//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TokenFor mints a signed token for the given identity. Account management
// lives outside this service, so tests sign tokens directly with the
// configured secret instead of going through a login endpoint.
func TokenFor(t *testing.T, cfg config.Config, userID uuid.UUID, role string) string {
	t.Helper()

	svc := jwt.NewService(cfg.JWT.Secret, time.Hour)
	token, err := svc.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
