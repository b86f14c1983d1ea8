package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerate/storerate-backend/internal/ratings"
	"github.com/storerate/storerate-backend/pkg/db/models"
	"github.com/storerate/storerate-backend/pkg/enums"
	"github.com/storerate/storerate-backend/pkg/pagination"
)

// sortColumns whitelists the fields an admin listing may order by.
var sortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"address":    "address",
	"role":       "role",
	"created_at": "created_at",
}

// ListQuery captures admin listing filters.
type ListQuery struct {
	Search string
	Role   enums.Role
	SortBy string
	Desc   bool
	Limit  int
	Cursor string
}

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored credential for the user.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}

// Delete removes the user row inside one transaction. Dependent stores and
// ratings cascade at the database level, and every store the user had rated
// gets its cached aggregates rebuilt from the surviving rating rows.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ratedStoreIDs []uuid.UUID
		if err := tx.Model(&models.Rating{}).
			Distinct().
			Where("user_id = ?", id).
			Pluck("store_id", &ratedStoreIDs).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return ratings.RecomputeStoreAggregates(tx, ratedStoreIDs...)
	})
}

// List returns a page of users matching the query plus a cursor for the next
// page. Cursor paging only applies to the default created_at ordering; explicit
// sorts return a single bounded page.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]models.User, string, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(address) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if q.Role != "" {
		query = query.Where("role = ?", q.Role)
	}

	if column, ok := sortColumns[q.SortBy]; ok && column != "created_at" {
		direction := "ASC"
		if q.Desc {
			direction = "DESC"
		}
		var rows []models.User
		err := query.
			Order(column + " " + direction).
			Order("id ASC").
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
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(q.Limit)
	var rows []models.User
	err = query.
		Order("created_at DESC").
		Order("id DESC").
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

// CountByRole tallies users per role for the admin dashboard.
func (r *Repository) CountByRole(ctx context.Context, role enums.Role) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
