// Package memory provides a scripted in-memory media source.
// Used as a test fixture and for demo galleries; it behaves like the
// device library, including cursor pagination and permission gating.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driven"
)

// Ensure MediaSource implements the interface.
var _ driven.MediaSource = (*MediaSource)(nil)

// MediaSource serves a fixed asset and album collection with cursor
// pagination. Access denial and cover failures can be scripted to
// exercise the gallery's degraded paths.
type MediaSource struct {
	mu         sync.RWMutex
	assets     []domain.MediaAsset
	albums     []domain.MediaAlbum
	denyAccess bool
	coverFails map[string]bool
}

// NewMediaSource creates a media source over the given collections.
func NewMediaSource(assets []domain.MediaAsset, albums []domain.MediaAlbum) *MediaSource {
	return &MediaSource{
		assets:     assets,
		albums:     albums,
		coverFails: make(map[string]bool),
	}
}

// DenyAccess makes RequestAccess fail with domain.ErrPermissionDenied.
func (m *MediaSource) DenyAccess(deny bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denyAccess = deny
}

// FailCover makes AlbumCover fail for the given album id.
func (m *MediaSource) FailCover(albumID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coverFails[albumID] = true
}

// SetAssets replaces the asset collection.
func (m *MediaSource) SetAssets(assets []domain.MediaAsset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = assets
}

// RequestAccess asks for permission to read the library.
func (m *MediaSource) RequestAccess(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.denyAccess {
		return domain.ErrPermissionDenied
	}
	return nil
}

// ListAssets returns one page of assets. The cursor is the numeric
// offset of the next page.
func (m *MediaSource) ListAssets(_ context.Context, pageSize int, cursor string) (domain.AssetPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if pageSize <= 0 {
		return domain.AssetPage{}, domain.ErrInvalidInput
	}

	offset := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil || parsed < 0 {
			return domain.AssetPage{}, domain.ErrInvalidInput
		}
		offset = parsed
	}
	if offset >= len(m.assets) {
		return domain.AssetPage{}, nil
	}

	end := offset + pageSize
	if end > len(m.assets) {
		end = len(m.assets)
	}

	page := domain.AssetPage{
		Assets:  append([]domain.MediaAsset(nil), m.assets[offset:end]...),
		HasMore: end < len(m.assets),
	}
	if page.HasMore {
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

// ListAlbums returns all albums.
func (m *MediaSource) ListAlbums(_ context.Context) ([]domain.MediaAlbum, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.MediaAlbum(nil), m.albums...), nil
}

// AlbumCover returns the first asset filed under the album.
func (m *MediaSource) AlbumCover(_ context.Context, albumID string) (*domain.MediaAsset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.coverFails[albumID] {
		return nil, domain.ErrNotFound
	}
	for i := range m.assets {
		if m.assets[i].AlbumID == albumID {
			asset := m.assets[i]
			return &asset, nil
		}
	}
	return nil, domain.ErrNotFound
}
