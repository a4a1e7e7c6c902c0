package commands

import (
	"pawsuite/internal/domain/staff"
	"pawsuite/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator is the seam the auth middleware depends on; the booking
// engine trusts the identity platform's signed tokens and never stores
// credentials itself.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, staff.Role, error)
}

type jwtTokenValidator struct {
	svc *jwt.Service
}

func NewTokenValidator(svc *jwt.Service) TokenValidator {
	return &jwtTokenValidator{svc: svc}
}

func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, staff.Role, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.StaffID, staff.Role(claims.Role), nil
}
