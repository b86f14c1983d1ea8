package stats

import (
	"context"
	"fmt"

	"github.com/storerate/storerate-backend/pkg/enums"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
)

// TotalsDTO is the admin dashboard headline view.
type TotalsDTO struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

// Service exposes platform-wide counts.
type Service interface {
	Totals(ctx context.Context) (*TotalsDTO, error)
}

type userCounter interface {
	CountByRole(ctx context.Context, role enums.Role) (int64, error)
}

type storeCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ratingCounter interface {
	Count(ctx context.Context) (int64, error)
}

type service struct {
	users   userCounter
	stores  storeCounter
	ratings ratingCounter
}

// ServiceParams bundles the dependencies required to build a stats service.
type ServiceParams struct {
	UserRepo   userCounter
	StoreRepo  storeCounter
	RatingRepo ratingCounter
}

// NewService constructs a stats service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.StoreRepo == nil {
		return nil, fmt.Errorf("store repository is required")
	}
	if params.RatingRepo == nil {
		return nil, fmt.Errorf("rating repository is required")
	}
	return &service{
		users:   params.UserRepo,
		stores:  params.StoreRepo,
		ratings: params.RatingRepo,
	}, nil
}

func (s *service) Totals(ctx context.Context) (*TotalsDTO, error) {
	users, err := s.users.CountByRole(ctx, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}
	stores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count stores")
	}
	ratings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count ratings")
	}
	return &TotalsDTO{Users: users, Stores: stores, Ratings: ratings}, nil
}
