package models

type LessonStatus string

const (
	StatusPending  LessonStatus = "pending"
	StatusComplete LessonStatus = "complete"
)

// Lesson is one curriculum unit. Day is unique and doubles as the
// storage key and the delivery order.
type Lesson struct {
	Day    int          `json:"day"`
	Topic  string       `json:"topic"`
	Status LessonStatus `json:"status"`
}

func (l *Lesson) IsPending() bool {
	return l.Status == StatusPending
}
