package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store represents a rateable storefront with denormalized rating aggregates.
type Store struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Email         string    `gorm:"type:text;not null"`
	Address       string    `gorm:"column:address;not null"`
	OwnerID       uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	AverageRating float64   `gorm:"column:average_rating;not null;default:0"`
	TotalRatings  int       `gorm:"column:total_ratings;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
