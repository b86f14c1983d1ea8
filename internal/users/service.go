package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerate/storerate-backend/pkg/config"
	"github.com/storerate/storerate-backend/pkg/db"
	"github.com/storerate/storerate-backend/pkg/db/models"
	"github.com/storerate/storerate-backend/pkg/enums"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/security"
	"github.com/storerate/storerate-backend/pkg/validation"
)

// Service defines the admin-facing user management behavior.
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OwnerDetailsDTO, error)
	List(ctx context.Context, q ListQuery) ([]UserDTO, string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateUserRequest is the admin payload for provisioning a user of any role.
type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required"`
	Address  string     `json:"address" validate:"required"`
	Password string     `json:"password" validate:"required"`
	Role     enums.Role `json:"role" validate:"required"`
}

type userRepository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, q ListQuery) ([]models.User, string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ownedStoresRepository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
}

type service struct {
	users       userRepository
	ownedStores ownedStoresRepository
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	UserRepo       userRepository
	StoreRepo      ownedStoresRepository
	PasswordConfig config.PasswordConfig
}

// NewService constructs a user management service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.StoreRepo == nil {
		return nil, fmt.Errorf("store repository is required")
	}
	return &service{
		users:       params.UserRepo,
		ownedStores: params.StoreRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	if err := validation.Profile(validation.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	}); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user payload").
			WithDetails(validation.FieldErrors(err))
	}
	if !req.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role").
			WithDetails(map[string]string{"role": "must be admin, user, or store_owner"})
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, CreateUserDTO{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Address:      req.Address,
		Role:         req.Role,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OwnerDetailsDTO, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	details := &OwnerDetailsDTO{UserDTO: *FromModel(user)}
	if user.Role != enums.RoleStoreOwner {
		return details, nil
	}

	stores, err := s.ownedStores.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load owned stores")
	}
	if avg, ok := ownerAverage(stores); ok {
		details.AverageRating = &avg
	}
	return details, nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]UserDTO, string, error) {
	rows, next, err := s.users.List(ctx, q)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, next, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

// ownerAverage is the mean of the rated stores' averages. Stores without
// ratings do not drag the number down.
func ownerAverage(stores []models.Store) (float64, bool) {
	var sum float64
	var rated int
	for _, store := range stores {
		if store.TotalRatings == 0 {
			continue
		}
		sum += store.AverageRating
		rated++
	}
	if rated == 0 {
		return 0, false
	}
	return sum / float64(rated), true
}
