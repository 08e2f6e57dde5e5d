package domain

// IngestState is the lifecycle state of one asset moving through the
// ingestion pipeline.
type IngestState string

// Ingestion states. Valid transitions:
// Pending -> Analyzing -> Committing -> Completed, with Failed reachable
// from Analyzing and Committing.
const (
	// IngestStatePending means the asset reference is queued.
	IngestStatePending IngestState = "pending"

	// IngestStateAnalyzing means the annotator call is in flight.
	IngestStateAnalyzing IngestState = "analyzing"

	// IngestStateCommitting means the image record is being written.
	IngestStateCommitting IngestState = "committing"

	// IngestStateCompleted means the image is in the gallery.
	IngestStateCompleted IngestState = "completed"

	// IngestStateFailed means annotation or commit failed; the asset
	// was not added to the gallery.
	IngestStateFailed IngestState = "failed"
)

// Terminal reports whether the state is final.
func (s IngestState) Terminal() bool {
	return s == IngestStateCompleted || s == IngestStateFailed
}

// String returns the string representation.
func (s IngestState) String() string {
	return string(s)
}

// IngestStatus is the UI-facing progress of one ingestion.
// Progress steps are display feedback, not retry checkpoints.
type IngestStatus struct {
	// ID is the generated image id for this ingestion.
	ID string `json:"id"`

	// State is the current lifecycle state.
	State IngestState `json:"state"`

	// Progress is a percentage in 0-100.
	Progress int `json:"progress"`

	// Message is a short human-readable step description.
	Message string `json:"message,omitempty"`
}
