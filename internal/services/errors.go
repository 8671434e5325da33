package services

import "fmt"

// The workflow converts collaborator failures into exactly one of these
// types at its boundary; nothing below the workflow leaks past RunOnce.

// ConfigurationError means credentials or settings are missing or
// invalid. Fatal before any work starts.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// GenerationError means the content API failed. The lesson stays
// pending, so the next invocation retries it.
type GenerationError struct {
	Topic string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating lesson for %q: %v", e.Topic, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// RenderError means the diagram could not be rendered. Non-fatal: the
// lesson is delivered text-only.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering diagram: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// DeliveryError means notification failed after the plain-text
// fallback. The lesson stays pending.
type DeliveryError struct {
	Day int
	Err error
}

func (e *DeliveryError) Error() string {
	if e.Day > 0 {
		return fmt.Sprintf("delivering lesson for day %d: %v", e.Day, e.Err)
	}
	return fmt.Sprintf("delivering notification: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// PersistenceError means a store read, write or verification failed.
// When it happens after delivery the lesson is in an ambiguous state;
// the operator sees it in the event log.
type PersistenceError struct {
	Op  string
	Day int
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s for day %d: %v", e.Op, e.Day, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
