package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storerate/storerate-backend/internal/ratings"
	"github.com/storerate/storerate-backend/internal/stores"
	"github.com/storerate/storerate-backend/internal/users"
	"github.com/storerate/storerate-backend/pkg/config"
	"github.com/storerate/storerate-backend/pkg/db"
	"github.com/storerate/storerate-backend/pkg/enums"
	"github.com/storerate/storerate-backend/pkg/logger"
	"github.com/storerate/storerate-backend/pkg/security"
)

type seedUser struct {
	name     string
	email    string
	address  string
	password string
	role     enums.Role
}

type seedStore struct {
	name       string
	email      string
	address    string
	ownerEmail string
}

type seedRating struct {
	storeEmail string
	userEmail  string
	score      int
}

var bootstrapUsers = []seedUser{
	{
		name:     "System Administrator Account",
		email:    "admin@example.com",
		address:  "123 Admin Street, Admin City, AC 12345",
		password: "Admin123!",
		role:     enums.RoleAdmin,
	},
	{
		name:     "John Doe Regular User Account",
		email:    "john@example.com",
		address:  "456 User Avenue, User City, UC 67890",
		password: "User123!",
		role:     enums.RoleUser,
	},
	{
		name:     "Jane Smith Store Owner Account",
		email:    "jane@example.com",
		address:  "789 Store Boulevard, Store City, SC 11111",
		password: "Store123!",
		role:     enums.RoleStoreOwner,
	},
}

var bootstrapStores = []seedStore{
	{
		name:       "Tech Solutions Store Downtown",
		email:      "contact@techsolutions.com",
		address:    "100 Tech Park, Downtown, DT 22222",
		ownerEmail: "jane@example.com",
	},
	{
		name:       "Fashion Forward Boutique Center",
		email:      "info@fashionforward.com",
		address:    "200 Fashion Plaza, Center City, CC 33333",
		ownerEmail: "jane@example.com",
	},
	{
		name:       "Gourmet Food Market Express",
		email:      "hello@gourmetmarket.com",
		address:    "300 Food Street, Market District, MD 44444",
		ownerEmail: "jane@example.com",
	},
}

var bootstrapRatings = []seedRating{
	{storeEmail: "contact@techsolutions.com", userEmail: "john@example.com", score: 5},
	{storeEmail: "info@fashionforward.com", userEmail: "john@example.com", score: 4},
}

// MaybeRun seeds the bootstrap data set when the feature flag is enabled and
// no users exist yet.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoSeed {
		return nil
	}

	userRepo := users.NewRepository(client.DB())
	existing, err := userRepo.CountByRole(ctx, "")
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		return nil
	}

	if logg != nil {
		logg.Info(ctx, "seeding bootstrap data")
	}
	if err := Run(ctx, client.DB(), cfg.Password); err != nil {
		return err
	}
	if logg != nil {
		logg.Info(ctx, "bootstrap data seeded")
	}
	return nil
}

// Run inserts the bootstrap users, stores, and ratings. Store aggregates come
// out of the rating upsert path, never hand-set values.
func Run(ctx context.Context, conn *gorm.DB, passwordCfg config.PasswordConfig) error {
	userRepo := users.NewRepository(conn)
	storeRepo := stores.NewRepository(conn)
	ratingRepo := ratings.NewRepository(conn)

	userIDs := map[string]uuid.UUID{}
	for _, u := range bootstrapUsers {
		hash, err := security.HashPassword(u.password, passwordCfg)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", u.email, err)
		}
		created, err := userRepo.Create(ctx, users.CreateUserDTO{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: hash,
			Address:      u.address,
			Role:         u.role,
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		userIDs[u.email] = created.ID
	}

	storeIDs := map[string]uuid.UUID{}
	for _, st := range bootstrapStores {
		ownerID, ok := userIDs[st.ownerEmail]
		if !ok {
			return fmt.Errorf("seed store %s references unknown owner %s", st.name, st.ownerEmail)
		}
		created, err := storeRepo.Create(ctx, stores.CreateStoreDTO{
			Name:    st.name,
			Email:   st.email,
			Address: st.address,
			OwnerID: ownerID,
		})
		if err != nil {
			return fmt.Errorf("seed store %s: %w", st.name, err)
		}
		storeIDs[st.email] = created.ID
	}

	for _, r := range bootstrapRatings {
		storeID, ok := storeIDs[r.storeEmail]
		if !ok {
			return fmt.Errorf("seed rating references unknown store %s", r.storeEmail)
		}
		userID, ok := userIDs[r.userEmail]
		if !ok {
			return fmt.Errorf("seed rating references unknown user %s", r.userEmail)
		}
		if _, _, err := ratingRepo.Upsert(ctx, storeID, userID, r.score); err != nil {
			return fmt.Errorf("seed rating for %s: %w", r.storeEmail, err)
		}
	}

	return nil
}
