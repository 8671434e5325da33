package db

import (
	"database/sql"
	"time"
)

type task struct {
	exec func(*sql.DB) (interface{}, error)
	resp chan result
}

type result struct {
	data interface{}
	err  error
}

// Queue serializes all access to the sqlite handle through a single
// worker goroutine. Statements that hit a busy database are retried a
// few times before the error is reported.
type Queue struct {
	tasks      chan task
	db         *sql.DB
	maxRetry   int
	retryDelay time.Duration
}

func NewQueue(db *sql.DB) *Queue {
	return newQueue(db, 100*time.Millisecond)
}

// NewQueueForTest uses a minimal retry delay so failing tests stay fast.
func NewQueueForTest(db *sql.DB) *Queue {
	return newQueue(db, time.Millisecond)
}

func newQueue(db *sql.DB, retryDelay time.Duration) *Queue {
	q := &Queue{
		tasks:      make(chan task, 16),
		db:         db,
		maxRetry:   3,
		retryDelay: retryDelay,
	}
	go q.worker()
	return q
}

func (q *Queue) Execute(exec func(*sql.DB) (interface{}, error)) (interface{}, error) {
	resp := make(chan result, 1)
	q.tasks <- task{exec: exec, resp: resp}
	r := <-resp
	return r.data, r.err
}

func (q *Queue) worker() {
	for t := range q.tasks {
		t.resp <- q.executeWithRetry(t)
	}
}

func (q *Queue) executeWithRetry(t task) result {
	var lastErr error
	for attempt := 0; attempt < q.maxRetry; attempt++ {
		data, err := t.exec(q.db)
		if err == nil {
			return result{data: data}
		}
		lastErr = err
		if attempt < q.maxRetry-1 {
			time.Sleep(time.Duration(attempt+1) * q.retryDelay)
		}
	}
	return result{err: lastErr}
}

func (q *Queue) Close() {
	close(q.tasks)
}

func (q *Queue) DB() *sql.DB {
	return q.db
}
