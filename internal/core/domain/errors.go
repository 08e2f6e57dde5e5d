package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPermissionDenied indicates media library access was refused.
	// The core continues with an empty media collection; not fatal.
	ErrPermissionDenied = errors.New("media access denied")

	// ErrCapacityExceeded indicates the metadata store rejected a write
	// as over-capacity. Triggers the degraded-write fallback.
	ErrCapacityExceeded = errors.New("storage capacity exceeded")

	// ErrAnnotationFailed indicates the AI annotator returned an error
	// or timed out. The specific ingestion attempt fails; the asset is
	// not added to the gallery.
	ErrAnnotationFailed = errors.New("annotation failed")

	// ErrAnnotatorUnavailable indicates the annotator is absent or
	// unreachable. The gallery functions with empty annotations
	// without one.
	ErrAnnotatorUnavailable = errors.New("annotator unavailable")

	// ErrWatchUnsupported indicates the media source cannot push
	// change events.
	ErrWatchUnsupported = errors.New("watch unsupported")
)
