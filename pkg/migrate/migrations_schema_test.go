package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storerate/storerate-backend/pkg/migrate"
)

func TestCoreSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_core_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE UNIQUE INDEX users_email_key ON users (email)",
		"CREATE UNIQUE INDEX ratings_store_user_key ON ratings (store_id, user_id)",
		"REFERENCES users (id) ON DELETE CASCADE",
		"REFERENCES stores (id) ON DELETE CASCADE",
		"CHECK (score BETWEEN 1 AND 5)",
		"CHECK (role IN ('admin', 'user', 'store_owner'))",
		"DROP TABLE IF EXISTS ratings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
