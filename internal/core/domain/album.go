package domain

import "time"

// Album groups images. Albums come from two places: the device media
// source (authoritative, replaced wholesale on every merge) and the
// user (created in-app, persisted in the metadata store).
type Album struct {
	// ID is the album identifier. Device album ids are owned by the
	// media source; user album ids are generated.
	ID string `json:"id"`

	// Title is the display name.
	Title string `json:"title"`

	// Count is the number of images in the album. For device-sourced
	// albums this is reported by the media source and may be stale -
	// it is a display hint, not an invariant.
	Count int `json:"count"`

	// CoverImage is the URI of a representative asset. Empty when cover
	// resolution failed or no asset exists.
	CoverImage string `json:"coverImage,omitempty"`

	// CreatedAt is when the album was created.
	CreatedAt time.Time `json:"createdAt"`

	// DeviceSourced marks albums that came from the media source.
	// User-created albums survive merges; device albums do not.
	DeviceSourced bool `json:"deviceSourced,omitempty"`
}
