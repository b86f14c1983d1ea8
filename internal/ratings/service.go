package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerate/storerate-backend/pkg/db/models"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/metrics"
)

const (
	// MinScore and MaxScore bound a valid submission.
	MinScore = 1
	MaxScore = 5
)

// Service defines the rating submission behavior.
type Service interface {
	Upsert(ctx context.Context, storeID, userID uuid.UUID, score int) (*UpsertResultDTO, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]RatingDTO, error)
}

type ratingRepository interface {
	Upsert(ctx context.Context, storeID, userID uuid.UUID, score int) (*models.Rating, *models.Store, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Rating, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rating, error)
}

type service struct {
	ratings ratingRepository
	metrics *metrics.RatingMetrics
}

// ServiceParams bundles the dependencies required to build a ratings service.
// Metrics is optional.
type ServiceParams struct {
	RatingRepo ratingRepository
	Metrics    *metrics.RatingMetrics
}

// NewService constructs a ratings service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.RatingRepo == nil {
		return nil, fmt.Errorf("rating repository is required")
	}
	return &service{ratings: params.RatingRepo, metrics: params.Metrics}, nil
}

func (s *service) Upsert(ctx context.Context, storeID, userID uuid.UUID, score int) (*UpsertResultDTO, error) {
	if score < MinScore || score > MaxScore {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid rating").
			WithDetails(map[string]string{"score": fmt.Sprintf("score must be between %d and %d", MinScore, MaxScore)})
	}

	rating, store, err := s.ratings.Upsert(ctx, storeID, userID, score)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert rating")
	}

	s.metrics.ObserveSubmitted()

	return &UpsertResultDTO{
		Rating:        *FromModel(rating),
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
	}, nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingDTO, error) {
	rows, err := s.ratings.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list store ratings")
	}
	return toDTOs(rows), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]RatingDTO, error) {
	rows, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user ratings")
	}
	return toDTOs(rows), nil
}

func toDTOs(rows []models.Rating) []RatingDTO {
	out := make([]RatingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
