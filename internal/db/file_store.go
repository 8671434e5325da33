package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/models"
)

// FileStore keeps the whole curriculum in a single JSON array file and
// rewrites the file on every mutation. It exists for running the agent
// without a database; it offers no cross-process atomicity, so
// CompleteTx degrades to a best-effort pending check.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() ([]models.Lesson, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum file: %w", err)
	}
	var lessons []models.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("parse curriculum file: %w", err)
	}
	return lessons, nil
}

func (s *FileStore) save(lessons []models.Lesson) error {
	data, err := json.MarshalIndent(lessons, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write curriculum file: %w", err)
	}
	return nil
}

func (s *FileStore) NextPending() (*models.Lesson, error) {
	lessons, err := s.load()
	if err != nil {
		return nil, err
	}
	var next *models.Lesson
	for i := range lessons {
		if !lessons[i].IsPending() {
			continue
		}
		if next == nil || lessons[i].Day < next.Day {
			next = &lessons[i]
		}
	}
	if next == nil {
		return nil, nil
	}
	found := *next
	return &found, nil
}

func (s *FileStore) Get(day int) (*models.Lesson, error) {
	lessons, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range lessons {
		if lessons[i].Day == day {
			found := lessons[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) Put(lesson *models.Lesson) error {
	lessons, err := s.load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			lessons = nil
		} else {
			return err
		}
	}
	replaced := false
	for i := range lessons {
		if lessons[i].Day == lesson.Day {
			lessons[i] = *lesson
			replaced = true
			break
		}
	}
	if !replaced {
		lessons = append(lessons, *lesson)
		sort.Slice(lessons, func(i, j int) bool { return lessons[i].Day < lessons[j].Day })
	}
	return s.save(lessons)
}

func (s *FileStore) Complete(lesson *models.Lesson) error {
	if err := s.overwriteComplete(lesson, false); err != nil {
		return err
	}
	// Read the file back and confirm the status landed.
	written, err := s.Get(lesson.Day)
	if err != nil {
		return fmt.Errorf("read back day %d: %w", lesson.Day, err)
	}
	if written.Status != models.StatusComplete {
		return ErrVerifyFailed
	}
	return nil
}

func (s *FileStore) CompleteTx(lesson *models.Lesson) error {
	return s.overwriteComplete(lesson, true)
}

func (s *FileStore) overwriteComplete(lesson *models.Lesson, requirePending bool) error {
	lessons, err := s.load()
	if err != nil {
		return err
	}
	for i := range lessons {
		if lessons[i].Day != lesson.Day {
			continue
		}
		if requirePending && !lessons[i].IsPending() {
			return ErrNotPending
		}
		lessons[i].Topic = lesson.Topic
		lessons[i].Status = models.StatusComplete
		return s.save(lessons)
	}
	return ErrNotFound
}
