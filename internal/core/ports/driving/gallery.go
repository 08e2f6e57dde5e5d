package driving

import (
	"context"

	"github.com/photon-labs/glance/internal/core/domain"
)

// GalleryService owns the in-memory image and album collections and
// keeps durable storage bounded to AI annotations and small album lists.
type GalleryService interface {
	// Load reads annotations and user albums from the metadata store.
	// Store failures are recovered locally; Load never fails outward.
	Load(ctx context.Context)

	// Refresh re-invokes Load. It does not re-fetch media source data;
	// that cadence belongs to the caller.
	Refresh(ctx context.Context)

	// MergeMediaAssets joins media source output with stored annotations
	// and replaces the in-memory collections. Idempotent for identical
	// inputs.
	MergeMediaAssets(ctx context.Context, assets []domain.MediaAsset, albums []domain.MediaAlbum)

	// AddImage persists the image's annotation record and prepends the
	// image to the in-memory collection.
	AddImage(ctx context.Context, img domain.Image) error

	// RemoveImage deletes the annotation record and drops the image from
	// memory. No-op for unknown ids.
	RemoveImage(ctx context.Context, id string)

	// UpdateImage merges a partial annotation into the stored record and
	// the in-memory image. No-op for unknown ids.
	UpdateImage(ctx context.Context, id string, patch domain.AnnotationPatch)

	// Images returns a snapshot of the in-memory image collection.
	Images() []domain.Image

	// Albums returns a snapshot of the in-memory album collection.
	Albums() []domain.Album

	// GetImage looks up one image by id.
	// Returns domain.ErrNotFound for unknown ids.
	GetImage(id string) (domain.Image, error)

	// ImagesInAlbum returns images whose AlbumID matches.
	ImagesInAlbum(albumID string) []domain.Image

	// CreateAlbum creates and persists a user album.
	CreateAlbum(ctx context.Context, title string) (domain.Album, error)

	// AllTags returns the distinct tags across the collection.
	AllTags() []string

	// ToggleFavorite flips the favorite flag for an image id and
	// persists the favorites set.
	ToggleFavorite(ctx context.Context, id string) error

	// Favorites returns the favorite image ids.
	Favorites() []string

	// Loading reports whether a Load is in flight.
	Loading() bool
}
