package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyServiceName = errors.New("service name cannot be empty")
	ErrInvalidCategory  = errors.New("invalid service category")
)

type Category string

const (
	CategoryBoarding Category = "BOARDING"
	CategoryDaycare  Category = "DAYCARE"
	CategoryGrooming Category = "GROOMING"
	CategoryTraining Category = "TRAINING"
	CategoryOther    Category = "OTHER"
)

func NewCategory(value string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(value)))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryBoarding, CategoryDaycare, CategoryGrooming, CategoryTraining, CategoryOther:
		return true
	default:
		return false
	}
}

// RequiresResource reports whether a booking for this category must occupy a
// physical kennel or suite. Overnight and day stays hold a unit; grooming and
// training appointments do not.
func (c Category) RequiresResource() bool {
	return c == CategoryBoarding || c == CategoryDaycare
}

type Service struct {
	id       uuid.UUID
	tenantID uuid.UUID
	name     string
	category Category
}

func NewService(id, tenantID uuid.UUID, name string, category Category) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyServiceName
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	return &Service{
		id:       id,
		tenantID: tenantID,
		name:     name,
		category: category,
	}, nil
}

func (s *Service) ID() uuid.UUID          { return s.id }
func (s *Service) TenantID() uuid.UUID    { return s.tenantID }
func (s *Service) Name() string           { return s.name }
func (s *Service) Category() Category     { return s.category }
func (s *Service) RequiresResource() bool { return s.category.RequiresResource() }
