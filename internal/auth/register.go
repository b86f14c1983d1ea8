package auth

import (
	"context"
	"strings"

	"github.com/storerate/storerate-backend/internal/users"
	"github.com/storerate/storerate-backend/pkg/db"
	"github.com/storerate/storerate-backend/pkg/enums"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/security"
	"github.com/storerate/storerate-backend/pkg/validation"
)

func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	if err := validation.Profile(validation.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	}); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid registration payload").
			WithDetails(validation.FieldErrors(err))
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Address:      req.Address,
		Role:         enums.RoleUser,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.establishSession(ctx, user)
}
