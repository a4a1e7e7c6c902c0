//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"pawsuite/internal/domain/staff"
	"pawsuite/internal/pkg/config"
	"pawsuite/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// MintStaffToken issues a signed access token the way the identity platform
// would. The booking engine never issues tokens itself.
func MintStaffToken(t *testing.T, cfg config.Config, staffID uuid.UUID, role staff.Role) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.JWT.Duration)
	require.NoError(t, err, "invalid JWT duration in test config")

	svc := jwt.NewService(cfg.JWT.Secret, duration)
	token, err := svc.GenerateToken(staffID, role)
	require.NoError(t, err, "failed to mint staff token")

	return token
}
