package commands

import (
	"pawsuite/internal/pkg/errs"

	"github.com/google/uuid"
)

// ownedRef pairs an entity's owning tenant with a label used only for error
// context. The label never names the foreign tenant.
type ownedRef struct {
	label    string
	tenantID uuid.UUID
}

// guardTenantOwnership rejects any referenced entity owned by a different
// tenant. It runs before rule validation and allocation so a cross-tenant
// caller learns nothing beyond "forbidden": not the owner, not whether the
// window was free, not even whether validation would have passed.
func guardTenantOwnership(tenantID uuid.UUID, refs ...ownedRef) error {
	for _, ref := range refs {
		if ref.tenantID != tenantID {
			return errs.Mark(errs.Newf("%s is not accessible to this tenant", ref.label), errs.ErrCrossTenantReference)
		}
	}
	return nil
}
