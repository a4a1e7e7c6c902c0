package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrEmptySuiteType      = errors.New("suite type cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
)

const (
	MaxResourceNameLength = 255
)

// Resource is a physical kennel or suite. It carries no capacity counter:
// availability is always computed from the set of overlapping reservations.
type Resource struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	suiteType string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewResource(id, tenantID uuid.UUID, name, suiteType string, active bool) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}

	suiteType = strings.TrimSpace(suiteType)
	if suiteType == "" {
		return nil, ErrEmptySuiteType
	}

	return &Resource{
		id:        id,
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		suiteType: suiteType,
		active:    active,
	}, nil
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) TenantID() uuid.UUID  { return r.tenantID }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) SuiteType() string    { return r.suiteType }
func (r *Resource) IsActive() bool       { return r.active }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
