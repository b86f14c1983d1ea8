package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/security"
	"github.com/storerate/storerate-backend/pkg/validation"
)

// UpdatePassword replaces the caller's credential. The original flow never
// asked for the old password, only for a live session, and that behavior is
// kept. The session is revoked once the new hash lands, so any token minted
// against the old credential stops working and the caller logs in again.
func (s *service) UpdatePassword(ctx context.Context, userID uuid.UUID, accessID, newPassword string) error {
	active, err := s.session.HasSession(ctx, accessID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check session")
	}
	if !active {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")
	}

	if err := validation.Password(newPassword); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid password").
			WithDetails(map[string]string{"password": err.Error()})
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	hash, err := security.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}

	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}
