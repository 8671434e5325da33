package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/models"
)

type LessonRepository struct {
	queue *Queue
}

func NewLessonRepository(queue *Queue) *LessonRepository {
	return &LessonRepository{queue: queue}
}

func (r *LessonRepository) NextPending() (*models.Lesson, error) {
	res, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		row := db.QueryRow(`
			SELECT day, topic, status FROM lessons
			WHERE status = ? ORDER BY day ASC LIMIT 1
		`, models.StatusPending)

		var lesson models.Lesson
		err := row.Scan(&lesson.Day, &lesson.Topic, &lesson.Status)
		if errors.Is(err, sql.ErrNoRows) {
			return (*models.Lesson)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return &lesson, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*models.Lesson), nil
}

func (r *LessonRepository) Get(day int) (*models.Lesson, error) {
	res, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		row := db.QueryRow(`SELECT day, topic, status FROM lessons WHERE day = ?`, day)

		var lesson models.Lesson
		err := row.Scan(&lesson.Day, &lesson.Topic, &lesson.Status)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return &lesson, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*models.Lesson), nil
}

func (r *LessonRepository) Put(lesson *models.Lesson) error {
	_, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		_, err := db.Exec(`
			INSERT INTO lessons (day, topic, status) VALUES (?, ?, ?)
			ON CONFLICT(day) DO UPDATE SET topic = excluded.topic, status = excluded.status
		`, lesson.Day, lesson.Topic, lesson.Status)
		return nil, err
	})
	return err
}

// Complete overwrites the full record with status complete and verifies
// the write with a read-back. The record the caller holds is the source
// of truth for topic, matching the overwrite-the-document semantics of
// the store.
func (r *LessonRepository) Complete(lesson *models.Lesson) error {
	_, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		_, err := db.Exec(`
			INSERT INTO lessons (day, topic, status) VALUES (?, ?, ?)
			ON CONFLICT(day) DO UPDATE SET topic = excluded.topic, status = excluded.status
		`, lesson.Day, lesson.Topic, models.StatusComplete)
		if err != nil {
			return nil, err
		}

		var status models.LessonStatus
		err = db.QueryRow(`SELECT status FROM lessons WHERE day = ?`, lesson.Day).Scan(&status)
		if err != nil {
			return nil, fmt.Errorf("read back day %d: %w", lesson.Day, err)
		}
		if status != models.StatusComplete {
			return nil, ErrVerifyFailed
		}
		return nil, nil
	})
	return err
}

// CompleteTx re-reads the status inside a transaction and only writes
// if the lesson is still pending, so two overlapping runs cannot both
// mark the same day complete.
func (r *LessonRepository) CompleteTx(lesson *models.Lesson) error {
	_, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		tx, err := db.Begin()
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var status models.LessonStatus
		err = tx.QueryRow(`SELECT status FROM lessons WHERE day = ?`, lesson.Day).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if status != models.StatusPending {
			return nil, ErrNotPending
		}

		_, err = tx.Exec(`
			UPDATE lessons SET topic = ?, status = ? WHERE day = ?
		`, lesson.Topic, models.StatusComplete, lesson.Day)
		if err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}
