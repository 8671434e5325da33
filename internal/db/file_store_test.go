package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/models"
)

func setupTestFileStore(t *testing.T, lessons []models.Lesson) (*FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Curriculam.json")
	store := NewFileStore(path)
	for i := range lessons {
		if err := store.Put(&lessons[i]); err != nil {
			t.Fatalf("Failed to seed day %d: %v", lessons[i].Day, err)
		}
	}
	return store, path
}

func TestFileStore_NextPendingReturnsLowestDay(t *testing.T) {
	store, _ := setupTestFileStore(t, []models.Lesson{
		{Day: 3, Topic: "Dropout", Status: models.StatusPending},
		{Day: 1, Topic: "Gradient Descent", Status: models.StatusComplete},
		{Day: 2, Topic: "Backpropagation", Status: models.StatusPending},
	})

	lesson, err := store.NextPending()
	if err != nil {
		t.Fatalf("NextPending failed: %v", err)
	}
	if lesson == nil || lesson.Day != 2 {
		t.Fatalf("Expected day 2, got %+v", lesson)
	}
}

func TestFileStore_ReadsDoNotRewriteFile(t *testing.T) {
	store, path := setupTestFileStore(t, []models.Lesson{
		{Day: 1, Topic: "A", Status: models.StatusPending},
	})

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.NextPending(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(1); err != nil {
		t.Fatal(err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("Read operations modified the curriculum file")
	}
}

func TestFileStore_CompleteRewritesAndVerifies(t *testing.T) {
	store, _ := setupTestFileStore(t, []models.Lesson{
		{Day: 1, Topic: "A", Status: models.StatusPending},
		{Day: 2, Topic: "B", Status: models.StatusPending},
	})

	lesson, err := store.NextPending()
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Complete(lesson); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	got, err := store.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusComplete {
		t.Errorf("Expected status complete, got %s", got.Status)
	}

	next, err := store.NextPending()
	if err != nil {
		t.Fatal(err)
	}
	if next == nil || next.Day != 2 {
		t.Errorf("Expected day 2 to remain pending, got %+v", next)
	}
}

func TestFileStore_CompleteTxConflict(t *testing.T) {
	store, _ := setupTestFileStore(t, []models.Lesson{
		{Day: 1, Topic: "A", Status: models.StatusComplete},
	})

	err := store.CompleteTx(&models.Lesson{Day: 1, Topic: "A", Status: models.StatusPending})
	if !errors.Is(err, ErrNotPending) {
		t.Errorf("Expected ErrNotPending, got %v", err)
	}
}

func TestFileStore_CompleteMissingLesson(t *testing.T) {
	store, _ := setupTestFileStore(t, []models.Lesson{
		{Day: 1, Topic: "A", Status: models.StatusPending},
	})

	err := store.Complete(&models.Lesson{Day: 9, Topic: "X", Status: models.StatusPending})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_PutCreatesFileAndSortsByDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")
	store := NewFileStore(path)

	if err := store.Put(&models.Lesson{Day: 2, Topic: "B", Status: models.StatusPending}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(&models.Lesson{Day: 1, Topic: "A", Status: models.StatusPending}); err != nil {
		t.Fatal(err)
	}

	lesson, err := store.NextPending()
	if err != nil {
		t.Fatal(err)
	}
	if lesson == nil || lesson.Day != 1 {
		t.Fatalf("Expected day 1, got %+v", lesson)
	}
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	if _, err := store.NextPending(); err == nil {
		t.Error("Expected an error for a missing curriculum file")
	}
}
