package shared

import "testing"

func TestRunMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	t.Run("creates artist tables", func(t *testing.T) {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='artists'").Scan(&name)
		if err != nil {
			t.Fatalf("artists table not created: %v", err)
		}

		var value int
		if err := db.QueryRow("SELECT value FROM artists_sequence WHERE id = 1").Scan(&value); err != nil {
			t.Fatalf("artists_sequence not seeded: %v", err)
		}
		if value != 0 {
			t.Errorf("expected initial sequence 0, got %d", value)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second RunMigrations() error = %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to count migrations: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 applied migration, got %d", count)
		}
	})
}
