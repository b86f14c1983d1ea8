package ratings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerate/storerate-backend/pkg/db/models"
)

// Repository handles rating persistence and the store aggregate columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to rating operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes the user's score for the store and refreshes the store's
// cached aggregates, all inside one transaction. An existing rating keeps its
// id and created_at; only the score moves. The aggregates are recomputed from
// the full rating set so the cache can never drift from the rows.
func (r *Repository) Upsert(ctx context.Context, storeID, userID uuid.UUID, score int) (*models.Rating, *models.Store, error) {
	var rating models.Rating
	var store models.Store

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&store, "id = ?", storeID).Error; err != nil {
			return err
		}

		err := tx.Where("store_id = ? AND user_id = ?", storeID, userID).First(&rating).Error
		switch {
		case err == nil:
			rating.Score = score
			if err := tx.Save(&rating).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			rating = models.Rating{StoreID: storeID, UserID: userID, Score: score}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if err := RecomputeStoreAggregates(tx, storeID); err != nil {
			return err
		}
		return tx.First(&store, "id = ?", storeID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &rating, &store, nil
}

type storeAggregate struct {
	Average float64
	Total   int
}

func aggregateFor(tx *gorm.DB, storeID uuid.UUID) (storeAggregate, error) {
	var agg storeAggregate
	err := tx.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS total").
		Where("store_id = ?", storeID).
		Scan(&agg).Error
	return agg, err
}

// RecomputeStoreAggregates rebuilds the cached average and count of each
// store from its rating rows. It runs on the caller's transaction so rating
// deletions earlier in the same unit of work are visible. A store id whose
// row no longer exists updates zero rows and is harmless, which covers
// stores that were themselves cascade-deleted.
func RecomputeStoreAggregates(tx *gorm.DB, storeIDs ...uuid.UUID) error {
	for _, storeID := range storeIDs {
		agg, err := aggregateFor(tx, storeID)
		if err != nil {
			return err
		}
		err = tx.Model(&models.Store{}).
			Where("id = ?", storeID).
			Updates(map[string]any{
				"average_rating": agg.Average,
				"total_ratings":  agg.Total,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByStoreAndUser returns the user's rating for the store.
func (r *Repository) FindByStoreAndUser(ctx context.Context, storeID, userID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByStore returns every rating of the store, newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Rating, error) {
	var rows []models.Rating
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByUser returns every rating the user has submitted, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rating, error) {
	var rows []models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count tallies all ratings for the admin dashboard.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
