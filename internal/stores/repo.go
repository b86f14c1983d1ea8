package stores

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerate/storerate-backend/pkg/db/models"
	"github.com/storerate/storerate-backend/pkg/pagination"
)

var sortColumns = map[string]string{
	"name":           "stores.name",
	"email":          "stores.email",
	"address":        "stores.address",
	"average_rating": "stores.average_rating",
	"created_at":     "stores.created_at",
}

// ListQuery captures store listing filters.
type ListQuery struct {
	Search string
	SortBy string
	Desc   bool
	Limit  int
	Cursor string
	// ForUser attaches this user's own score to each row when set.
	ForUser uuid.UUID
}

// StoreWithUserScore is a listing row with the optional per-user score joined in.
type StoreWithUserScore struct {
	models.Store
	UserScore *int
}

// RaterRow is one rating joined with its author for the owner dashboard.
type RaterRow struct {
	RatingID  uuid.UUID
	UserID    uuid.UUID
	Name      string
	Email     string
	Score     int
	CreatedAt time.Time
}

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByOwner returns all stores owned by the provided user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Delete removes the store row. Its ratings cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Store{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns stores matching the query. When ForUser is set, each row carries
// that user's own score via a left join on their rating.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]StoreWithUserScore, string, error) {
	query := r.db.WithContext(ctx).Model(&models.Store{})

	if q.ForUser != uuid.Nil {
		query = query.
			Select("stores.*, user_ratings.score AS user_score").
			Joins("LEFT JOIN ratings AS user_ratings ON user_ratings.store_id = stores.id AND user_ratings.user_id = ?", q.ForUser)
	} else {
		query = query.Select("stores.*")
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(stores.name) LIKE ? OR LOWER(stores.address) LIKE ?", pattern, pattern)
	}

	if column, ok := sortColumns[q.SortBy]; ok && column != "stores.created_at" {
		direction := "ASC"
		if q.Desc {
			direction = "DESC"
		}
		var rows []StoreWithUserScore
		err := query.
			Order(column + " " + direction).
			Order("stores.id ASC").
			Limit(pagination.NormalizeLimit(q.Limit)).
			Find(&rows).Error
		if err != nil {
			return nil, "", err
		}
		return rows, "", nil
	}

	cursor, err := pagination.ParseCursor(q.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"(stores.created_at < ?) OR (stores.created_at = ? AND stores.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(q.Limit)
	var rows []StoreWithUserScore
	err = query.
		Order("stores.created_at DESC").
		Order("stores.id DESC").
		Limit(pagination.LimitWithBuffer(q.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// ListRaters returns every rating of the store joined with its author.
func (r *Repository) ListRaters(ctx context.Context, storeID uuid.UUID) ([]RaterRow, error) {
	var rows []RaterRow
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.id AS rating_id, ratings.user_id, users.name, users.email, ratings.score, ratings.created_at").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Count tallies all stores for the admin dashboard.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
