package ratings

import (
	"time"

	"github.com/google/uuid"

	"github.com/storerate/storerate-backend/pkg/db/models"
)

// RatingDTO is the transport shape for a single rating.
type RatingDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	UserID    uuid.UUID `json:"user_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertResultDTO pairs the persisted rating with the store's fresh aggregates.
type UpsertResultDTO struct {
	Rating        RatingDTO `json:"rating"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
}

func FromModel(r *models.Rating) *RatingDTO {
	if r == nil {
		return nil
	}

	return &RatingDTO{
		ID:        r.ID,
		StoreID:   r.StoreID,
		UserID:    r.UserID,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
