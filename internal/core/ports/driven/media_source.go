package driven

import (
	"context"

	"github.com/photon-labs/glance/internal/core/domain"
)

// MediaSource exposes the device photo library as paginated read-only
// collections. It owns asset identity, dimensions, timestamps and file
// names; it never carries AI metadata.
type MediaSource interface {
	// RequestAccess asks for permission to read the library.
	// Returns domain.ErrPermissionDenied when refused.
	RequestAccess(ctx context.Context) error

	// ListAssets returns one page of assets. Pass an empty cursor for
	// the first page and the previous page's NextCursor afterwards;
	// pages cannot be fetched out of order.
	ListAssets(ctx context.Context, pageSize int, cursor string) (domain.AssetPage, error)

	// ListAlbums returns all albums the source reports.
	ListAlbums(ctx context.Context) ([]domain.MediaAlbum, error)

	// AlbumCover returns one representative asset for an album.
	// Returns domain.ErrNotFound when the album has no resolvable cover.
	AlbumCover(ctx context.Context, albumID string) (*domain.MediaAsset, error)
}

// MediaWatcher is implemented by media sources that can push change
// events (e.g. a watched directory). Optional.
type MediaWatcher interface {
	// Watch emits an event whenever the underlying library changes.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
