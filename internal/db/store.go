package db

import (
	"errors"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/models"
)

var (
	// ErrNotFound is returned when no lesson exists for the requested day.
	ErrNotFound = errors.New("lesson not found")

	// ErrNotPending is returned by CompleteTx when the lesson was no
	// longer pending at write time (another run got there first).
	ErrNotPending = errors.New("lesson is not pending")

	// ErrVerifyFailed is returned when the post-write read-back did not
	// show the lesson as complete.
	ErrVerifyFailed = errors.New("completion write could not be verified")
)

// LessonStore is the persistence boundary of the agent. Two backends
// implement it: the sqlite repository and the curriculum file store.
type LessonStore interface {
	// NextPending returns the pending lesson with the lowest day, or
	// (nil, nil) when the curriculum is finished.
	NextPending() (*models.Lesson, error)

	// Get returns the lesson for a day, or ErrNotFound.
	Get(day int) (*models.Lesson, error)

	// Put upserts a lesson keyed by day.
	Put(lesson *models.Lesson) error

	// Complete overwrites the lesson with status complete, then reads
	// the record back and returns ErrVerifyFailed if the write did not
	// stick. The store is treated as possibly stale, so a successful
	// Exec alone is not trusted.
	Complete(lesson *models.Lesson) error

	// CompleteTx is the compare-and-swap variant of Complete: the
	// status is re-checked inside a transaction and ErrNotPending is
	// returned if the lesson was already completed by a concurrent run.
	CompleteTx(lesson *models.Lesson) error
}
