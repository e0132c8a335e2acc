package service

import (
	"path/filepath"
	"testing"

	"signplay/internal/database"
	"signplay/internal/models"
	"signplay/internal/repository"
)

func newBackupTestDB(t *testing.T, name string) *database.DB {
	t.Helper()

	db, err := database.InitializeSQLite(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestBackupRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	source := newBackupTestDB(t, "source.db")

	userRepo := repository.NewUserRepository(source)
	answerRepo := repository.NewAnswerRepository(source)

	user, err := userRepo.CreateUser("player@example.com", "hash", "Player")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if _, err := answerRepo.CreateRecord(&models.AnswerRecord{
		UserID:         user.ID,
		Question:       "3 + 4",
		ExpectedAnswer: 7,
		ObservedAnswer: 7,
		Accuracy:       100,
		DexterityScore: 91,
		IsCorrect:      true,
	}); err != nil {
		t.Fatalf("Failed to create answer record: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := NewBackupService(source).Export(backupPath); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	target := newBackupTestDB(t, "target.db")
	if err := NewBackupService(target).Import(backupPath); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	restored, err := repository.NewUserRepository(target).GetUserByEmail("player@example.com")
	if err != nil {
		t.Fatalf("Failed to read restored user: %v", err)
	}
	if restored == nil {
		t.Fatal("restored user not found")
	}
	if restored.ID != user.ID || restored.Name != "Player" {
		t.Errorf("restored user = %+v, want ID %d name Player", restored, user.ID)
	}

	records, err := repository.NewAnswerRepository(target).ListByUser(user.ID)
	if err != nil {
		t.Fatalf("Failed to list restored records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Question != "3 + 4" || !records[0].IsCorrect {
		t.Errorf("restored record = %+v", records[0])
	}
}
