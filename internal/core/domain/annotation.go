package domain

import "time"

// Annotation is the raw output of the AI annotator for one asset.
type Annotation struct {
	// Caption is a one-sentence description.
	Caption string `json:"caption"`

	// Tags are searchable labels.
	Tags []string `json:"tags"`

	// Objects are detected object labels.
	Objects []string `json:"objects"`

	// Colors is the dominant colour palette.
	Colors []string `json:"colors"`

	// People are recognised person names.
	People []string `json:"people"`

	// Mood is a free-text mood label.
	Mood string `json:"mood"`

	// Scene is a free-text scene label.
	Scene string `json:"scene"`

	// TextContent is OCR-extracted text.
	TextContent string `json:"textContent"`

	// Embedding is the vector representation.
	Embedding []float32 `json:"embedding"`
}

// AnnotationRecord is the durable AI-derived state for one asset, keyed
// by Image ID. It is the only per-image state that is persisted; all
// other Image fields are recomputed each session from the media source.
type AnnotationRecord struct {
	// Caption is the AI-generated description.
	Caption string `json:"caption,omitempty"`

	// Tags are AI-generated labels.
	Tags []string `json:"tags,omitempty"`

	// Metadata holds the structured AI payload.
	Metadata ImageMetadata `json:"metadata,omitempty"`

	// Embedding is the AI-generated vector.
	Embedding []float32 `json:"embedding,omitempty"`

	// UpdatedAt is when this record was last written. Recency drives
	// which records survive a capacity-degraded write.
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEmpty reports whether the record carries no real AI output.
// Empty records are never written to the durable store.
func (r AnnotationRecord) IsEmpty() bool {
	return r.Caption == "" &&
		len(r.Tags) == 0 &&
		len(r.Embedding) == 0 &&
		r.Metadata.IsEmpty()
}

// AnnotationPatch is a partial annotation update. Nil fields are left
// untouched on the target.
type AnnotationPatch struct {
	// Caption replaces the caption when non-nil.
	Caption *string `json:"caption,omitempty"`

	// Tags replaces the tag list when non-nil.
	Tags []string `json:"tags,omitempty"`

	// Metadata replaces the structured payload when non-nil.
	Metadata *ImageMetadata `json:"metadata,omitempty"`

	// Embedding replaces the vector when non-nil.
	Embedding []float32 `json:"embedding,omitempty"`
}

// RecordFromAnnotation builds a durable record from annotator output.
func RecordFromAnnotation(a *Annotation, at time.Time) AnnotationRecord {
	return AnnotationRecord{
		Caption: a.Caption,
		Tags:    a.Tags,
		Metadata: ImageMetadata{
			Objects:     a.Objects,
			Colors:      a.Colors,
			People:      a.People,
			Mood:        a.Mood,
			Scene:       a.Scene,
			TextContent: a.TextContent,
		},
		Embedding: a.Embedding,
		UpdatedAt: at,
	}
}
