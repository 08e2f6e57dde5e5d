package driven

import "context"

// Metadata store keys used by the gallery.
const (
	// KeyAnnotations holds the full id -> AnnotationRecord map as JSON.
	KeyAnnotations = "gallery/annotations"

	// KeyUserAlbums holds the user-created album list as JSON.
	KeyUserAlbums = "gallery/albums"

	// KeyFavorites holds the favorite image id set as JSON.
	KeyFavorites = "gallery/favorites"
)

// MetadataStore is durable key/value persistence for the small amount of
// locally-owned gallery state: AI annotations, user albums, favorites.
//
// Writes may be rejected with domain.ErrCapacityExceeded when the value
// does not fit the store's budget; callers are expected to degrade
// rather than fail.
type MetadataStore interface {
	// Get retrieves the value for a key.
	// Returns domain.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under a key, replacing any previous value.
	// Returns domain.ErrCapacityExceeded when the write does not fit.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// ListKeys returns all stored keys.
	ListKeys(ctx context.Context) ([]string, error)
}
