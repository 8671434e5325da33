package services

import (
	"context"
	"errors"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/db"
	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/models"
	"github.com/rs/zerolog"
)

const curriculumFinishedMessage = "🎉 You've completed the entire curriculum! Congratulations! 🎉"

// Generator produces the lesson text for a topic.
type Generator interface {
	Lesson(ctx context.Context, topic string) (string, error)
}

// Renderer turns diagram source into image bytes.
type Renderer interface {
	Render(ctx context.Context, source string) ([]byte, error)
}

// Notifier delivers a message with an optional image.
type Notifier interface {
	Send(ctx context.Context, text string, image []byte) error
}

// Options collapses the agent variants into flags on one workflow.
type Options struct {
	// Transactional uses the compare-and-swap completion write, so two
	// overlapping runs cannot both mark the same lesson complete.
	Transactional bool

	// DisableDiagrams skips diagram extraction and rendering entirely.
	DisableDiagrams bool
}

// Workflow drives one lesson through generation, delivery and
// completion. Delivery is at-least-once: the completion write happens
// only after a confirmed send, so a crash in between re-delivers the
// same lesson on the next run rather than losing it.
type Workflow struct {
	store    db.LessonStore
	gen      Generator
	renderer Renderer
	notifier Notifier
	opts     Options
	log      zerolog.Logger
}

func NewWorkflow(store db.LessonStore, gen Generator, renderer Renderer, notifier Notifier, opts Options, log zerolog.Logger) *Workflow {
	return &Workflow{
		store:    store,
		gen:      gen,
		renderer: renderer,
		notifier: notifier,
		opts:     opts,
		log:      log,
	}
}

// RunOnce processes at most one pending lesson and returns. A nil
// return means either a delivered-and-completed lesson or the terminal
// curriculum-finished path.
func (w *Workflow) RunOnce(ctx context.Context) error {
	log := RunLogger(w.log)

	lesson, err := w.store.NextPending()
	if err != nil {
		log.Error().Str("event", EventPersistenceFailed).Err(err).Msg("selecting next lesson")
		return &PersistenceError{Op: "select", Err: err}
	}

	if lesson == nil {
		log.Info().Str("event", EventCurriculumFinished).Msg("no pending lessons")
		if err := w.notifier.Send(ctx, curriculumFinishedMessage, nil); err != nil {
			log.Error().Str("event", EventDeliveryFailed).Err(err).Msg("sending completion notice")
			return &DeliveryError{Err: err}
		}
		return nil
	}

	log.Info().
		Str("event", EventLessonSelected).
		Int("day", lesson.Day).
		Str("topic", lesson.Topic).
		Msg("lesson selected")

	content, err := w.gen.Lesson(ctx, lesson.Topic)
	if err != nil {
		log.Error().Str("event", EventGenerationFailed).Int("day", lesson.Day).Err(err).Msg("generation failed, lesson stays pending")
		return &GenerationError{Topic: lesson.Topic, Err: err}
	}
	log.Info().Str("event", EventContentGenerated).Int("day", lesson.Day).Int("chars", len(content)).Msg("content generated")

	text := content
	var image []byte
	if !w.opts.DisableDiagrams {
		if source, stripped, ok := ExtractDiagram(content); ok {
			text = stripped
			image, err = w.renderer.Render(ctx, source)
			if err != nil {
				// Degrade to text-only; rendering is never fatal.
				image = nil
				renderErr := &RenderError{Err: err}
				log.Warn().Str("event", EventDiagramFailed).Int("day", lesson.Day).Err(renderErr).Msg("delivering without diagram")
			} else {
				log.Info().Str("event", EventDiagramRendered).Int("day", lesson.Day).Int("bytes", len(image)).Msg("diagram rendered")
			}
		}
	}

	if err := w.notifier.Send(ctx, text, image); err != nil {
		log.Error().Str("event", EventDeliveryFailed).Int("day", lesson.Day).Err(err).Msg("delivery failed, lesson stays pending")
		return &DeliveryError{Day: lesson.Day, Err: err}
	}
	log.Info().Str("event", EventLessonDelivered).Int("day", lesson.Day).Msg("lesson delivered")

	return w.markComplete(log, lesson)
}

func (w *Workflow) markComplete(log zerolog.Logger, lesson *models.Lesson) error {
	var err error
	if w.opts.Transactional {
		err = w.store.CompleteTx(lesson)
		if errors.Is(err, db.ErrNotPending) {
			// A concurrent run completed it first. Delivery already
			// happened, so the duplicate notification is the accepted
			// at-least-once tradeoff; the run itself is clean.
			log.Warn().Str("event", EventCompletionConflict).Int("day", lesson.Day).Msg("lesson completed by another run")
			return nil
		}
	} else {
		err = w.store.Complete(lesson)
	}
	if err != nil {
		log.Error().Str("event", EventPersistenceFailed).Int("day", lesson.Day).Err(err).Msg("completion write failed after delivery")
		return &PersistenceError{Op: "complete", Day: lesson.Day, Err: err}
	}

	log.Info().Str("event", EventLessonCompleted).Int("day", lesson.Day).Msg("lesson marked complete")
	return nil
}
