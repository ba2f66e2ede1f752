package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShippedMigrationsValidate(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestInitSchemaCoversCoreTables(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var init string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_init_schema.sql") {
			b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
			if err != nil {
				t.Fatalf("read init migration: %v", err)
			}
			init = string(b)
		}
	}
	if init == "" {
		t.Fatal("init_schema migration not found")
	}

	for _, table := range []string{"users", "orders", "ledger_entries", "payout_requests", "outbox_events"} {
		if !strings.Contains(init, "CREATE TABLE "+table) {
			t.Errorf("init schema missing table %s", table)
		}
	}
	if !strings.Contains(init, "idx_users_name_role") {
		t.Error("init schema missing unique (name, role) index")
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Payout Index!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_payout_index.sql") {
		t.Fatalf("unexpected migration filename %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration failed validation: %v", err)
	}
}
