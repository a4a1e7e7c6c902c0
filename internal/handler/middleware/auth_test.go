//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pawsuite/internal/domain/staff"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHasMinimumRole(t *testing.T) {
	tests := []struct {
		name      string
		staffRole staff.Role
		minRole   staff.Role
		want      bool
	}{
		{"admin passes a manager gate", staff.RoleAdmin, staff.RoleManager, true},
		{"manager passes a manager gate", staff.RoleManager, staff.RoleManager, true},
		{"caregiver fails a manager gate", staff.RoleCaregiver, staff.RoleManager, false},
		{"caregiver passes a caregiver gate", staff.RoleCaregiver, staff.RoleCaregiver, true},
		{"unknown role fails every gate", staff.Role("intern"), staff.RoleCaregiver, false},
		{"unknown gate admits nobody", staff.RoleAdmin, staff.Role("owner"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasMinimumRole(tt.staffRole, tt.minRole))
		})
	}
}

func TestRequireRoleAtLeast(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mw := NewAuthMiddleware(nil)

	newRouter := func(role *staff.Role) *gin.Engine {
		router := gin.New()
		setRole := func(c *gin.Context) {
			if role != nil {
				c.Set(ctxStaffRoleKey, *role)
			}
		}
		router.POST("/close-out", setRole, mw.RequireRoleAtLeast(staff.RoleManager), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return router
	}

	perform := func(role *staff.Role) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/close-out", nil)
		w := httptest.NewRecorder()
		newRouter(role).ServeHTTP(w, req)
		return w
	}

	t.Run("admits a manager", func(t *testing.T) {
		role := staff.RoleManager
		assert.Equal(t, http.StatusNoContent, perform(&role).Code)
	})

	t.Run("admits an admin", func(t *testing.T) {
		role := staff.RoleAdmin
		assert.Equal(t, http.StatusNoContent, perform(&role).Code)
	})

	t.Run("rejects a caregiver with 403", func(t *testing.T) {
		role := staff.RoleCaregiver
		w := perform(&role)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient permissions")
	})

	t.Run("answers 500 when no role was authenticated", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, perform(nil).Code)
	})
}
