package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/models"
	_ "modernc.org/sqlite"
	"pgregory.net/rapid"
)

func setupTestRepo(t *testing.T) (*LessonRepository, func()) {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := InitSchema(sqlDB); err != nil {
		t.Fatal(err)
	}

	queue := NewQueueForTest(sqlDB)
	return NewLessonRepository(queue), func() {
		queue.Close()
		sqlDB.Close()
	}
}

func seed(t *testing.T, repo *LessonRepository, lessons ...models.Lesson) {
	t.Helper()
	for i := range lessons {
		if err := repo.Put(&lessons[i]); err != nil {
			t.Fatalf("Failed to seed day %d: %v", lessons[i].Day, err)
		}
	}
}

func TestNextPending_ReturnsLowestDay(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seed(t, repo,
		models.Lesson{Day: 1, Topic: "Gradient Descent", Status: models.StatusComplete},
		models.Lesson{Day: 2, Topic: "Backpropagation", Status: models.StatusPending},
		models.Lesson{Day: 3, Topic: "Dropout", Status: models.StatusPending},
	)

	lesson, err := repo.NextPending()
	if err != nil {
		t.Fatalf("NextPending failed: %v", err)
	}
	if lesson == nil {
		t.Fatal("Expected a pending lesson, got nil")
	}
	if lesson.Day != 2 {
		t.Errorf("Expected day 2, got %d", lesson.Day)
	}
	if lesson.Topic != "Backpropagation" {
		t.Errorf("Expected topic Backpropagation, got %q", lesson.Topic)
	}
}

func TestNextPending_EmptyCurriculum(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	lesson, err := repo.NextPending()
	if err != nil {
		t.Fatalf("NextPending failed: %v", err)
	}
	if lesson != nil {
		t.Errorf("Expected nil for empty curriculum, got day %d", lesson.Day)
	}
}

func TestNextPending_AllComplete(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seed(t, repo,
		models.Lesson{Day: 1, Topic: "A", Status: models.StatusComplete},
		models.Lesson{Day: 2, Topic: "B", Status: models.StatusComplete},
	)

	lesson, err := repo.NextPending()
	if err != nil {
		t.Fatalf("NextPending failed: %v", err)
	}
	if lesson != nil {
		t.Errorf("Expected nil when all lessons complete, got day %d", lesson.Day)
	}
}

func TestComplete_SetsStatusAndVerifies(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seed(t, repo,
		models.Lesson{Day: 2, Topic: "Backpropagation", Status: models.StatusPending},
		models.Lesson{Day: 3, Topic: "Dropout", Status: models.StatusPending},
	)

	lesson, err := repo.NextPending()
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Complete(lesson); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	got, err := repo.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusComplete {
		t.Errorf("Expected status complete, got %s", got.Status)
	}

	next, err := repo.NextPending()
	if err != nil {
		t.Fatal(err)
	}
	if next == nil || next.Day != 3 {
		t.Errorf("Expected day 3 to remain pending, got %+v", next)
	}
	if next.Status != models.StatusPending {
		t.Errorf("Expected day 3 to stay pending, got %s", next.Status)
	}
}

func TestCompleteTx_MarksPendingLesson(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seed(t, repo, models.Lesson{Day: 1, Topic: "A", Status: models.StatusPending})

	if err := repo.CompleteTx(&models.Lesson{Day: 1, Topic: "A", Status: models.StatusPending}); err != nil {
		t.Fatalf("CompleteTx failed: %v", err)
	}

	got, err := repo.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusComplete {
		t.Errorf("Expected status complete, got %s", got.Status)
	}
}

func TestCompleteTx_ConflictReturnsNotPending(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seed(t, repo, models.Lesson{Day: 1, Topic: "A", Status: models.StatusComplete})

	err := repo.CompleteTx(&models.Lesson{Day: 1, Topic: "A", Status: models.StatusPending})
	if !errors.Is(err, ErrNotPending) {
		t.Errorf("Expected ErrNotPending, got %v", err)
	}
}

func TestCompleteTx_MissingLesson(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	err := repo.CompleteTx(&models.Lesson{Day: 42, Topic: "Nope", Status: models.StatusPending})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.Get(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestProperty_NextPendingIsMinimumDay(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		days := rapid.SliceOfNDistinct(rapid.IntRange(1, 365), 1, 30, rapid.ID).Draw(rt, "days")

		minPending := -1
		for _, day := range days {
			status := models.StatusComplete
			if rapid.Bool().Draw(rt, "pending") {
				status = models.StatusPending
				if minPending == -1 || day < minPending {
					minPending = day
				}
			}
			if err := repo.Put(&models.Lesson{Day: day, Topic: "t", Status: status}); err != nil {
				rt.Fatalf("Put failed: %v", err)
			}
		}

		lesson, err := repo.NextPending()
		if err != nil {
			rt.Fatalf("NextPending failed: %v", err)
		}

		if minPending == -1 {
			if lesson != nil {
				rt.Errorf("Expected nil with no pending lessons, got day %d", lesson.Day)
			}
			return
		}
		if lesson == nil {
			rt.Fatalf("Expected day %d, got nil", minPending)
		}
		if lesson.Day != minPending {
			rt.Errorf("Expected minimum pending day %d, got %d", minPending, lesson.Day)
		}

		// Completing the selected lesson must never yield the same day again.
		if err := repo.Complete(lesson); err != nil {
			rt.Fatalf("Complete failed: %v", err)
		}
		next, err := repo.NextPending()
		if err != nil {
			rt.Fatalf("NextPending after Complete failed: %v", err)
		}
		if next != nil && next.Day == lesson.Day {
			rt.Errorf("Day %d returned again after completion", lesson.Day)
		}
	})
}
