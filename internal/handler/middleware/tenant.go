package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"pawsuite/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxTenantIDKey = "tenant_id"

// TenantResolver maps a subdomain slug to a tenant id; see
// infra/tenantcache for the cached implementation.
type TenantResolver interface {
	Resolve(ctx context.Context, slug string) (uuid.UUID, error)
}

type TenantMiddleware struct {
	resolver TenantResolver
}

func NewTenantMiddleware(resolver TenantResolver) *TenantMiddleware {
	return &TenantMiddleware{resolver: resolver}
}

// RequireTenant resolves the tenant slug and pins the tenant id on the
// request context. The X-Tenant header wins; without it the first label of
// the Host is tried, so sunnyvale-pets.pawsuite.example resolves the same
// tenant. Every downstream query is scoped by this id; a request with no
// resolvable tenant never reaches a handler.
func (m *TenantMiddleware) RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.GetHeader("X-Tenant")
		if slug == "" {
			slug = subdomainSlug(c.Request.Host)
		}
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "X-Tenant header required",
			})
			c.Abort()
			return
		}

		tenantID, err := m.resolver.Resolve(c.Request.Context(), slug)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Tenant not found",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
			c.Abort()
			return
		}

		c.Set(ctxTenantIDKey, tenantID)
		c.Next()
	}
}

// subdomainSlug extracts the leftmost host label. Bare hosts (localhost,
// IPs, single-label domains) yield nothing so header-less local requests
// fail fast instead of resolving a bogus slug.
func subdomainSlug(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if net.ParseIP(host) != nil {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[0]
}

func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID, exists := c.Get(ctxTenantIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := tenantID.(uuid.UUID)
	return id, ok
}
