package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driven"
	"github.com/photon-labs/glance/internal/core/ports/driving"
	"github.com/photon-labs/glance/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// DefaultPageSize is the asset page size for library scans. Pages are
// fetched sequentially, so the size bounds memory growth during a scan.
const DefaultPageSize = 500

// Library loads the device photo library through the media source and
// reconciles it into the gallery. The media source remains the
// authority for what exists; the gallery only ever holds a merged view.
type Library struct {
	media    driven.MediaSource
	gallery  driving.GalleryService
	pageSize int

	mu     sync.RWMutex
	status driving.ScanStatus
}

// LibraryOption customises a Library.
type LibraryOption func(*Library)

// WithPageSize overrides the scan page size.
func WithPageSize(n int) LibraryOption {
	return func(l *Library) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

// NewLibrary creates a library service.
func NewLibrary(media driven.MediaSource, gallery driving.GalleryService, opts ...LibraryOption) *Library {
	l := &Library{
		media:    media,
		gallery:  gallery,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Scan requests access, pages through all assets and albums, and merges
// them into the gallery. Permission denial leaves the gallery untouched
// and is not an error; a failed page fetch aborts the scan without a
// partial merge.
func (l *Library) Scan(ctx context.Context) error {
	l.setStatus(driving.ScanStatus{Running: true})
	defer l.markStopped()

	logger.Section("Library Scan")

	if err := l.media.RequestAccess(ctx); err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			logger.Warn("Media access denied, continuing with empty media collection")
			return nil
		}
		return fmt.Errorf("request media access: %w", err)
	}

	assets, err := l.loadAllAssets(ctx)
	if err != nil {
		return err
	}

	// Album failures degrade to an asset-only merge.
	albums, err := l.media.ListAlbums(ctx)
	if err != nil {
		logger.Warn("Album listing failed: %v", err)
		l.bumpErrors()
		albums = nil
	}
	l.updateStatus(func(s *driving.ScanStatus) { s.AlbumsLoaded = len(albums) })

	l.gallery.MergeMediaAssets(ctx, assets, albums)

	logger.Info("Scan complete: %d assets, %d albums", len(assets), len(albums))
	return nil
}

// loadAllAssets pages through the full library. Pagination is strictly
// sequential: each page's cursor depends on the previous result.
func (l *Library) loadAllAssets(ctx context.Context) ([]domain.MediaAsset, error) {
	var assets []domain.MediaAsset
	cursor := ""

	for {
		page, err := l.media.ListAssets(ctx, l.pageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("list assets (cursor %q): %w", cursor, err)
		}

		assets = append(assets, page.Assets...)
		l.updateStatus(func(s *driving.ScanStatus) { s.AssetsLoaded = len(assets) })
		logger.Debug("Loaded page of %d assets, total %d, more=%t", len(page.Assets), len(assets), page.HasMore)

		if !page.HasMore {
			return assets, nil
		}
		cursor = page.NextCursor
	}
}

// Watch re-scans whenever the media source reports a change. Blocks
// until ctx is cancelled.
func (l *Library) Watch(ctx context.Context) error {
	watcher, ok := l.media.(driven.MediaWatcher)
	if !ok {
		return domain.ErrWatchUnsupported
	}

	events, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch media source: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, open := <-events:
			if !open {
				return nil
			}
			if err := l.Scan(ctx); err != nil {
				logger.Warn("Rescan after media change failed: %v", err)
				l.bumpErrors()
			}
		}
	}
}

// Status returns a copy of the current scan status.
func (l *Library) Status() driving.ScanStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

func (l *Library) setStatus(status driving.ScanStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status = status
}

func (l *Library) updateStatus(fn func(*driving.ScanStatus)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.status)
}

func (l *Library) markStopped() {
	l.updateStatus(func(s *driving.ScanStatus) { s.Running = false })
}

func (l *Library) bumpErrors() {
	l.updateStatus(func(s *driving.ScanStatus) { s.ErrorCount++ })
}
