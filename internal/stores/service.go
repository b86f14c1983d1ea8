package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerate/storerate-backend/pkg/db/models"
	"github.com/storerate/storerate-backend/pkg/enums"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/validation"
)

// Service defines the store browsing and management behavior.
type Service interface {
	Create(ctx context.Context, req CreateStoreRequest) (*StoreDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	List(ctx context.Context, q ListQuery) ([]StoreForUserDTO, string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*OwnerDashboardDTO, error)
}

// CreateStoreRequest is the admin payload for registering a store.
type CreateStoreRequest struct {
	Name    string    `json:"name" validate:"required"`
	Email   string    `json:"email" validate:"required"`
	Address string    `json:"address" validate:"required"`
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
}

type storeRepository interface {
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q ListQuery) ([]StoreWithUserScore, string, error)
	ListRaters(ctx context.Context, storeID uuid.UUID) ([]RaterRow, error)
}

type ownerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	stores storeRepository
	owners ownerRepository
}

// ServiceParams bundles the dependencies required to build a stores service.
type ServiceParams struct {
	StoreRepo storeRepository
	UserRepo  ownerRepository
}

// NewService constructs a stores service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.StoreRepo == nil {
		return nil, fmt.Errorf("store repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		stores: params.StoreRepo,
		owners: params.UserRepo,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateStoreRequest) (*StoreDTO, error) {
	details := map[string]string{}
	if err := validation.Name(req.Name); err != nil {
		details["name"] = err.Error()
	}
	if err := validation.Email(req.Email); err != nil {
		details["email"] = err.Error()
	}
	if err := validation.Address(req.Address); err != nil {
		details["address"] = err.Error()
	}
	if req.OwnerID == uuid.Nil {
		details["owner_id"] = "owner is required"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store payload").WithDetails(details)
	}

	owner, err := s.owners.FindByID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store payload").
				WithDetails(map[string]string{"owner_id": "owner does not exist"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup owner")
	}
	if owner.Role != enums.RoleStoreOwner {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store payload").
			WithDetails(map[string]string{"owner_id": "owner must hold the store_owner role"})
	}

	store, err := s.stores.Create(ctx, CreateStoreDTO{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup store")
	}
	return FromModel(store), nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]StoreForUserDTO, string, error) {
	rows, next, err := s.stores.List(ctx, q)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stores")
	}
	out := make([]StoreForUserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, StoreForUserDTO{
			StoreDTO:  *FromModel(&rows[i].Store),
			UserScore: rows[i].UserScore,
		})
	}
	return out, next, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.stores.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete store")
	}
	return nil
}

func (s *service) OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*OwnerDashboardDTO, error) {
	stores, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load owned stores")
	}

	dashboard := &OwnerDashboardDTO{Stores: make([]OwnerStoreDTO, 0, len(stores))}
	var sum float64
	var rated int
	for i := range stores {
		store := &stores[i]
		raters, err := s.stores.ListRaters(ctx, store.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store raters")
		}
		entry := OwnerStoreDTO{
			StoreDTO: *FromModel(store),
			Raters:   make([]RaterDTO, 0, len(raters)),
		}
		for _, rater := range raters {
			entry.Raters = append(entry.Raters, RaterDTO{
				RatingID:  rater.RatingID,
				UserID:    rater.UserID,
				Name:      rater.Name,
				Email:     rater.Email,
				Score:     rater.Score,
				CreatedAt: rater.CreatedAt,
			})
		}
		dashboard.Stores = append(dashboard.Stores, entry)

		if store.TotalRatings > 0 {
			sum += store.AverageRating
			rated++
		}
	}
	if rated > 0 {
		avg := sum / float64(rated)
		dashboard.AverageRating = &avg
	}
	return dashboard, nil
}
