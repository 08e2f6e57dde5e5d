// Package filesystem provides a media source backed by a local photo
// directory. Immediate subdirectories are exposed as albums; EXIF data
// supplies capture timestamps and pixel dimensions when present.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driven"
	"github.com/photon-labs/glance/internal/logger"
)

// Ensure MediaSource implements the interfaces.
var (
	_ driven.MediaSource  = (*MediaSource)(nil)
	_ driven.MediaWatcher = (*MediaSource)(nil)
)

// imageExtensions are the file types treated as photos.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".heic": true,
	".webp": true,
}

// MediaSource reads photos from a directory tree. The directory is the
// authority for identity, names, sizes and timestamps; the source never
// carries AI metadata.
type MediaSource struct {
	root string

	mu       sync.Mutex
	snapshot []domain.MediaAsset // set by the last full listing
}

// NewMediaSource creates a media source over the given directory.
func NewMediaSource(root string) *MediaSource {
	return &MediaSource{root: root}
}

// RequestAccess verifies the photo directory exists and is readable.
func (m *MediaSource) RequestAccess(_ context.Context) error {
	info, err := os.Stat(m.root)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, m.root)
		}
		return fmt.Errorf("stat photo directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, m.root)
	}
	if _, err := os.ReadDir(m.root); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, m.root)
	}
	return nil
}

// ListAssets returns one page of assets in stable (path-sorted) order.
// The cursor is the relative path of the last asset served.
func (m *MediaSource) ListAssets(_ context.Context, pageSize int, cursor string) (domain.AssetPage, error) {
	if pageSize <= 0 {
		return domain.AssetPage{}, domain.ErrInvalidInput
	}

	assets, err := m.scanAll()
	if err != nil {
		return domain.AssetPage{}, err
	}

	start := 0
	if cursor != "" {
		for i := range assets {
			if assets[i].ID == cursor {
				start = i + 1
				break
			}
		}
	}
	if start >= len(assets) {
		return domain.AssetPage{}, nil
	}

	end := start + pageSize
	if end > len(assets) {
		end = len(assets)
	}

	page := domain.AssetPage{
		Assets:  assets[start:end],
		HasMore: end < len(assets),
	}
	if page.HasMore {
		page.NextCursor = assets[end-1].ID
	}
	return page, nil
}

// ListAlbums exposes immediate subdirectories as albums.
func (m *MediaSource) ListAlbums(_ context.Context) ([]domain.MediaAlbum, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, fmt.Errorf("read photo directory: %w", err)
	}

	var albums []domain.MediaAlbum
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		count, err := m.countImages(filepath.Join(m.root, entry.Name()))
		if err != nil {
			logger.Warn("Counting %s failed: %v", entry.Name(), err)
			continue
		}
		album := domain.MediaAlbum{
			ID:         entry.Name(),
			Title:      entry.Name(),
			AssetCount: count,
		}
		if info, err := entry.Info(); err == nil {
			album.CreatedAt = info.ModTime()
		}
		albums = append(albums, album)
	}
	return albums, nil
}

// AlbumCover returns the first asset in the album directory.
func (m *MediaSource) AlbumCover(ctx context.Context, albumID string) (*domain.MediaAsset, error) {
	assets, err := m.scanDir(filepath.Join(m.root, albumID), albumID)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, domain.ErrNotFound
	}
	asset := assets[0]
	return &asset, nil
}

// scanAll lists every image under root and its immediate subdirectories.
func (m *MediaSource) scanAll() ([]domain.MediaAsset, error) {
	assets, err := m.scanDir(m.root, "")
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, fmt.Errorf("read photo directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		sub, err := m.scanDir(filepath.Join(m.root, entry.Name()), entry.Name())
		if err != nil {
			logger.Warn("Scanning %s failed: %v", entry.Name(), err)
			continue
		}
		assets = append(assets, sub...)
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })

	m.mu.Lock()
	m.snapshot = assets
	m.mu.Unlock()
	return assets, nil
}

// countImages counts the images directly inside one directory.
func (m *MediaSource) countImages(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		count++
	}
	return count, nil
}

// scanDir lists the images directly inside one directory.
func (m *MediaSource) scanDir(dir, albumID string) ([]domain.MediaAsset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var assets []domain.MediaAsset
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			logger.Warn("Stat %s failed: %v", path, err)
			continue
		}

		id := entry.Name()
		if albumID != "" {
			id = albumID + "/" + entry.Name()
		}
		asset := domain.MediaAsset{
			ID:         id,
			URI:        "file://" + path,
			FileName:   entry.Name(),
			CreatedAt:  info.ModTime(),
			ModifiedAt: info.ModTime(),
			Size:       info.Size(),
			AlbumID:    albumID,
		}
		applyExif(&asset, path)
		assets = append(assets, asset)
	}
	return assets, nil
}

// applyExif overlays EXIF capture time and dimensions when available.
// Photos without EXIF keep filesystem timestamps and zero dimensions.
func applyExif(asset *domain.MediaAsset, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return
	}

	if taken, err := x.DateTime(); err == nil {
		asset.CreatedAt = taken
	}
	if tag, err := x.Get(exif.PixelXDimension); err == nil {
		if width, err := tag.Int(0); err == nil {
			asset.Width = width
		}
	}
	if tag, err := x.Get(exif.PixelYDimension); err == nil {
		if height, err := tag.Int(0); err == nil {
			asset.Height = height
		}
	}
}
