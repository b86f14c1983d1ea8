package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/storerate/storerate-backend/pkg/db/models"
)

// StoreDTO is the transport shape for a store plus its rating aggregates.
type StoreDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       uuid.UUID `json:"owner_id"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StoreForUserDTO adds the requesting user's own score to the listing shape.
type StoreForUserDTO struct {
	StoreDTO
	UserScore *int `json:"user_score,omitempty"`
}

// RaterDTO identifies one user's rating of a store for the owner dashboard.
type RaterDTO struct {
	RatingID  uuid.UUID `json:"rating_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerStoreDTO pairs a store with the users who rated it.
type OwnerStoreDTO struct {
	StoreDTO
	Raters []RaterDTO `json:"raters"`
}

// OwnerDashboardDTO is the full owner view across their stores.
type OwnerDashboardDTO struct {
	Stores        []OwnerStoreDTO `json:"stores"`
	AverageRating *float64        `json:"average_rating,omitempty"`
}

// CreateStoreDTO holds the data required by the repo to persist a new store.
type CreateStoreDTO struct {
	Name    string
	Email   string
	Address string
	OwnerID uuid.UUID
}

func FromModel(s *models.Store) *StoreDTO {
	if s == nil {
		return nil
	}

	return &StoreDTO{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Address:       s.Address,
		OwnerID:       s.OwnerID,
		AverageRating: s.AverageRating,
		TotalRatings:  s.TotalRatings,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (c CreateStoreDTO) ToModel() *models.Store {
	return &models.Store{
		Name:    c.Name,
		Email:   c.Email,
		Address: c.Address,
		OwnerID: c.OwnerID,
	}
}
