package services

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event names for the structured run log.
const (
	EventLessonSelected     = "lesson_selected"
	EventCurriculumFinished = "curriculum_finished"
	EventContentGenerated   = "content_generated"
	EventGenerationFailed   = "generation_failed"
	EventDiagramRendered    = "diagram_rendered"
	EventDiagramFailed      = "diagram_render_failed"
	EventLessonDelivered    = "lesson_delivered"
	EventDeliveryFallback   = "delivery_fallback"
	EventDeliveryFailed     = "delivery_failed"
	EventLessonCompleted    = "lesson_completed"
	EventCompletionConflict = "completion_conflict"
	EventPersistenceFailed  = "persistence_failed"
)

// RunLogger returns a logger enriched with a fresh run ID. Every event
// of a single invocation carries the same ID.
func RunLogger(base zerolog.Logger) zerolog.Logger {
	return base.With().Str("run_id", uuid.NewString()).Logger()
}
