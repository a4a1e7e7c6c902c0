package reservation

import (
	"errors"

	"pawsuite/internal/domain/service"

	"github.com/google/uuid"
)

var (
	ErrResourceRequired       = errors.New("resource or suite type required")
	ErrResourceRemovalBlocked = errors.New("cannot remove resource assignment from a reservation that requires one")
)

// ValidateResourceRequirement enforces the category/resource contract for new
// bookings: boarding and daycare must name a resource or at least a suite type
// to auto-assign from; other categories may carry either but are not required
// to. Pure function, no side effects.
func ValidateResourceRequirement(category service.Category, resourceID *uuid.UUID, suiteType *string) error {
	if !category.RequiresResource() {
		return nil
	}
	if resourceID != nil {
		return nil
	}
	if suiteType != nil && *suiteType != "" {
		return nil
	}
	return ErrResourceRequired
}

// ValidateResourceRemoval guards updates: once a reservation for a
// resource-requiring category holds a resource, the assignment cannot be
// stripped, only replaced.
func ValidateResourceRemoval(category service.Category, existingResourceID, patchedResourceID *uuid.UUID) error {
	if !category.RequiresResource() {
		return nil
	}
	if existingResourceID == nil {
		return nil
	}
	if patchedResourceID == nil {
		return ErrResourceRemovalBlocked
	}
	return nil
}
