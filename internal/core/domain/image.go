package domain

import "time"

// Image represents one photo in the in-memory gallery collection,
// whether device-resident or freshly captured.
//
// Device-derived images are rebuilt each session by joining a MediaAsset
// with an optional AnnotationRecord; they are never persisted themselves.
type Image struct {
	// ID is the stable identifier: the device asset id, or a generated
	// id for new captures.
	ID string `json:"id"`

	// URI is an opaque locator for the pixel data. Owned by the media
	// source; the core never dereferences it.
	URI string `json:"uri"`

	// FileName is the original file name as reported by the media source.
	FileName string `json:"fileName"`

	// CreatedAt is immutable once set.
	CreatedAt time.Time `json:"createdAt"`

	// ModifiedAt is updated whenever the annotation changes.
	ModifiedAt time.Time `json:"modifiedAt"`

	// Size is the file size in bytes. Zero when the media source
	// cannot report it.
	Size int64 `json:"size"`

	// Width and Height are pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Caption is the AI-generated description. Empty until annotated.
	Caption string `json:"caption,omitempty"`

	// Tags are AI-generated labels. Empty until annotated.
	Tags []string `json:"tags"`

	// AlbumID is a weak reference to an Album, not an ownership relation.
	AlbumID string `json:"albumId,omitempty"`

	// Metadata holds the structured AI-derived payload.
	Metadata ImageMetadata `json:"metadata"`

	// Embedding is the AI-generated vector representation.
	Embedding []float32 `json:"embedding,omitempty"`
}

// ImageMetadata is the structured AI-derived payload of an Image.
// Absence of a field means "not yet analysed", not "analysed as empty".
type ImageMetadata struct {
	// Objects are detected object labels.
	Objects []string `json:"objects,omitempty"`

	// Colors is the dominant colour palette.
	Colors []string `json:"colors,omitempty"`

	// People are recognised person names.
	People []string `json:"people,omitempty"`

	// Mood is a free-text mood label.
	Mood string `json:"mood,omitempty"`

	// Scene is a free-text scene label.
	Scene string `json:"scene,omitempty"`

	// TextContent is OCR-extracted text found in the image.
	TextContent string `json:"textContent,omitempty"`
}

// IsEmpty reports whether no AI analysis has produced any metadata.
func (m ImageMetadata) IsEmpty() bool {
	return len(m.Objects) == 0 &&
		len(m.Colors) == 0 &&
		len(m.People) == 0 &&
		m.Mood == "" &&
		m.Scene == "" &&
		m.TextContent == ""
}
