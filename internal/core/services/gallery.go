package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driven"
	"github.com/photon-labs/glance/internal/core/ports/driving"
	"github.com/photon-labs/glance/internal/logger"
)

// Ensure Gallery implements the interface.
var _ driving.GalleryService = (*Gallery)(nil)

// DefaultAnnotationCap is how many annotation records survive a
// capacity-degraded write, newest first.
const DefaultAnnotationCap = 1000

// Gallery reconciles the volatile device media collection with the
// durable AI annotation map into the in-memory collections every other
// component consumes.
//
// The in-memory state is guarded by one mutex; merges compute their
// result off-lock and assign it in one critical section, so overlapping
// operations interleave with last-writer-wins semantics rather than
// partial writes.
type Gallery struct {
	store driven.MetadataStore
	media driven.MediaSource

	// annotationCap bounds the reduced write on storage pressure.
	annotationCap int
	clock         func() time.Time

	mu           sync.RWMutex
	images       []domain.Image
	deviceAlbums []domain.Album
	userAlbums   []domain.Album
	annotations  map[string]domain.AnnotationRecord
	captured     map[string]bool
	favorites    map[string]bool
	loading      bool
}

// GalleryOption customises a Gallery.
type GalleryOption func(*Gallery)

// WithAnnotationCap overrides the degraded-write record cap.
func WithAnnotationCap(n int) GalleryOption {
	return func(g *Gallery) { g.annotationCap = n }
}

// WithClock overrides the time source. Useful for testing.
func WithClock(clock func() time.Time) GalleryOption {
	return func(g *Gallery) { g.clock = clock }
}

// NewGallery creates a gallery service. The media source is only used
// to resolve album covers during merges and may be nil, in which case
// covers stay unset.
func NewGallery(store driven.MetadataStore, media driven.MediaSource, opts ...GalleryOption) *Gallery {
	g := &Gallery{
		store:         store,
		media:         media,
		annotationCap: DefaultAnnotationCap,
		clock:         time.Now,
		annotations:   make(map[string]domain.AnnotationRecord),
		captured:      make(map[string]bool),
		favorites:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load reads the annotation map, user album list and favorites set from
// the metadata store. Store failures are logged and leave the prior
// in-memory state untouched; Load never fails outward.
func (g *Gallery) Load(ctx context.Context) {
	g.mu.Lock()
	g.loading = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.loading = false
		g.mu.Unlock()
	}()

	logger.Section("Gallery Load")

	annotations, ok := loadJSON[map[string]domain.AnnotationRecord](ctx, g.store, driven.KeyAnnotations)
	if !ok {
		return
	}
	userAlbums, ok := loadJSON[[]domain.Album](ctx, g.store, driven.KeyUserAlbums)
	if !ok {
		return
	}
	favoriteIDs, ok := loadJSON[[]string](ctx, g.store, driven.KeyFavorites)
	if !ok {
		return
	}

	if annotations == nil {
		annotations = make(map[string]domain.AnnotationRecord)
	}
	favorites := make(map[string]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favorites[id] = true
	}

	// Records already in the store were admitted once; keep rewriting
	// them even when empty.
	captured := make(map[string]bool, len(annotations))
	for id := range annotations {
		captured[id] = true
	}

	g.mu.Lock()
	g.annotations = annotations
	g.captured = captured
	g.userAlbums = userAlbums
	g.favorites = favorites
	g.mu.Unlock()

	logger.Info("Loaded %d annotation records, %d user albums", len(annotations), len(userAlbums))
}

// Refresh re-invokes Load. Re-fetching media source data is the
// caller's responsibility; reconciliation cadence is decoupled from the
// media source's polling cadence.
func (g *Gallery) Refresh(ctx context.Context) {
	g.Load(ctx)
}

// loadJSON reads and decodes one key. Absent keys yield the zero value.
// Returns false when the prior in-memory state should be kept.
func loadJSON[T any](ctx context.Context, store driven.MetadataStore, key string) (T, bool) {
	var value T
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return value, true
		}
		logger.Error("Load %s failed: %v", key, err)
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		logger.Error("Decode %s failed: %v", key, err)
		return value, false
	}
	return value, true
}

// MergeMediaAssets joins media source assets with stored annotations
// and replaces the in-memory collections. For every asset, the
// annotation record (when present) is spliced onto a freshly built
// image; the asset remains authoritative for everything else. Device
// albums are replaced wholesale; user-created albums are preserved.
//
// Cover resolution runs concurrently per album and is failure-isolated:
// a failed lookup leaves that album's cover unset and never fails the
// merge. The final assignment is one atomic swap after everything
// settles, so a merge that loses the race simply overwrites in full.
func (g *Gallery) MergeMediaAssets(ctx context.Context, assets []domain.MediaAsset, albums []domain.MediaAlbum) {
	logger.Section("Gallery Merge")
	logger.Debug("Merging %d assets, %d albums", len(assets), len(albums))

	g.mu.RLock()
	annotations := make(map[string]domain.AnnotationRecord, len(g.annotations))
	for id, rec := range g.annotations {
		annotations[id] = rec
	}
	g.mu.RUnlock()

	images := make([]domain.Image, 0, len(assets))
	for _, asset := range assets {
		images = append(images, buildImage(asset, annotations))
	}

	deviceAlbums := g.resolveDeviceAlbums(ctx, albums)

	g.mu.Lock()
	g.images = images
	g.deviceAlbums = deviceAlbums
	g.mu.Unlock()

	logger.Info("Merge complete: %d images, %d device albums", len(images), len(deviceAlbums))
}

// buildImage constructs the in-memory image for one asset, splicing in
// the annotation record when one exists.
func buildImage(asset domain.MediaAsset, annotations map[string]domain.AnnotationRecord) domain.Image {
	img := domain.Image{
		ID:         asset.ID,
		URI:        asset.URI,
		FileName:   asset.FileName,
		CreatedAt:  asset.CreatedAt,
		ModifiedAt: asset.ModifiedAt,
		Size:       asset.Size,
		Width:      asset.Width,
		Height:     asset.Height,
		AlbumID:    asset.AlbumID,
		Tags:       []string{},
	}
	rec, ok := annotations[asset.ID]
	if !ok {
		return img
	}
	img.Caption = rec.Caption
	if rec.Tags != nil {
		img.Tags = rec.Tags
	}
	img.Metadata = rec.Metadata
	img.Embedding = rec.Embedding
	if rec.UpdatedAt.After(img.ModifiedAt) {
		img.ModifiedAt = rec.UpdatedAt
	}
	return img
}

// resolveDeviceAlbums converts media albums, resolving one cover asset
// per album concurrently.
func (g *Gallery) resolveDeviceAlbums(ctx context.Context, albums []domain.MediaAlbum) []domain.Album {
	resolved := make([]domain.Album, len(albums))

	var wg sync.WaitGroup
	for i, album := range albums {
		resolved[i] = domain.Album{
			ID:            album.ID,
			Title:         album.Title,
			Count:         album.AssetCount,
			CreatedAt:     album.CreatedAt,
			DeviceSourced: true,
		}
		if g.media == nil {
			continue
		}

		wg.Add(1)
		go func(i int, albumID string) {
			defer wg.Done()
			cover, err := g.media.AlbumCover(ctx, albumID)
			if err != nil {
				logger.Warn("Cover resolution for album %s failed: %v", albumID, err)
				return
			}
			resolved[i].CoverImage = cover.URI
		}(i, album.ID)
	}
	wg.Wait()

	return resolved
}

// AddImage writes the image's annotation record to the metadata store
// and prepends the full image to the in-memory collection, so new
// captures sort before previously known images in raw order.
//
// This is the new-capture path: the record is written even when the
// annotation is empty. A capacity rejection triggers the degraded
// write; the in-memory state is updated regardless, so only future
// durability can degrade, never current-session correctness.
func (g *Gallery) AddImage(ctx context.Context, img domain.Image) error {
	now := g.clock()
	rec := domain.AnnotationRecord{
		Caption:   img.Caption,
		Tags:      img.Tags,
		Metadata:  img.Metadata,
		Embedding: img.Embedding,
		UpdatedAt: now,
	}

	g.mu.Lock()
	g.annotations[img.ID] = rec
	g.captured[img.ID] = true
	g.images = append([]domain.Image{img}, g.images...)
	g.mu.Unlock()

	return g.saveAnnotations(ctx)
}

// RemoveImage deletes the annotation record and drops the image from
// the in-memory collection. Unknown ids are a silent no-op.
func (g *Gallery) RemoveImage(ctx context.Context, id string) {
	g.mu.Lock()
	_, known := g.annotations[id]
	delete(g.annotations, id)
	delete(g.captured, id)
	favChanged := g.favorites[id]
	delete(g.favorites, id)

	removed := false
	for i := range g.images {
		if g.images[i].ID == id {
			g.images = append(g.images[:i], g.images[i+1:]...)
			removed = true
			break
		}
	}
	g.mu.Unlock()

	if known || removed {
		if err := g.saveAnnotations(ctx); err != nil {
			logger.Error("Persist after remove %s failed: %v", id, err)
		}
	}
	if favChanged {
		g.saveFavorites(ctx)
	}
}

// UpdateImage merges the patch into the stored annotation record
// (creating one if absent) and into the in-memory image, preserving
// unspecified fields. Ids absent from the in-memory collection are a
// silent no-op.
func (g *Gallery) UpdateImage(ctx context.Context, id string, patch domain.AnnotationPatch) {
	now := g.clock()

	g.mu.Lock()
	idx := -1
	for i := range g.images {
		if g.images[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		g.mu.Unlock()
		return
	}

	rec := g.annotations[id]
	if patch.Caption != nil {
		rec.Caption = *patch.Caption
		g.images[idx].Caption = *patch.Caption
	}
	if patch.Tags != nil {
		rec.Tags = patch.Tags
		g.images[idx].Tags = patch.Tags
	}
	if patch.Metadata != nil {
		rec.Metadata = *patch.Metadata
		g.images[idx].Metadata = *patch.Metadata
	}
	if patch.Embedding != nil {
		rec.Embedding = patch.Embedding
		g.images[idx].Embedding = patch.Embedding
	}
	rec.UpdatedAt = now
	g.annotations[id] = rec
	g.images[idx].ModifiedAt = now
	g.mu.Unlock()

	if err := g.saveAnnotations(ctx); err != nil {
		logger.Error("Persist after update %s failed: %v", id, err)
	}
}

// saveAnnotations rewrites the full annotation map to the metadata
// store. On a capacity rejection it retries with only the most recently
// updated records, capped at annotationCap. Returns an error only when
// the reduced write also fails; the in-memory map keeps serving the
// full set either way.
func (g *Gallery) saveAnnotations(ctx context.Context) error {
	g.mu.RLock()
	snapshot := make(map[string]domain.AnnotationRecord, len(g.annotations))
	for id, rec := range g.annotations {
		// Only real AI output is persisted; the new-capture path is the
		// one exception and always writes.
		if rec.IsEmpty() && !g.captured[id] {
			continue
		}
		snapshot[id] = rec
	}
	g.mu.RUnlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode annotations: %w", err)
	}

	err = g.store.Set(ctx, driven.KeyAnnotations, raw)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		return fmt.Errorf("save annotations: %w", err)
	}

	logger.Warn("Annotation write over capacity (%d records), retrying with most recent %d",
		len(snapshot), g.annotationCap)

	reduced := truncateByRecency(snapshot, g.annotationCap)
	raw, err = json.Marshal(reduced)
	if err != nil {
		return fmt.Errorf("encode reduced annotations: %w", err)
	}
	if err := g.store.Set(ctx, driven.KeyAnnotations, raw); err != nil {
		logger.Error("Reduced annotation write failed: %v", err)
		return fmt.Errorf("save reduced annotations: %w", err)
	}

	logger.Info("Reduced annotation write succeeded: %d of %d records", len(reduced), len(snapshot))
	return nil
}

// truncateByRecency keeps the n most recently updated records.
func truncateByRecency(records map[string]domain.AnnotationRecord, n int) map[string]domain.AnnotationRecord {
	if len(records) <= n {
		return records
	}

	type entry struct {
		id  string
		rec domain.AnnotationRecord
	}
	entries := make([]entry, 0, len(records))
	for id, rec := range records {
		entries = append(entries, entry{id, rec})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].rec.UpdatedAt.Equal(entries[j].rec.UpdatedAt) {
			return entries[i].id < entries[j].id
		}
		return entries[i].rec.UpdatedAt.After(entries[j].rec.UpdatedAt)
	})

	kept := make(map[string]domain.AnnotationRecord, n)
	for _, e := range entries[:n] {
		kept[e.id] = e.rec
	}
	return kept
}

// Images returns a snapshot of the in-memory image collection.
func (g *Gallery) Images() []domain.Image {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Image, len(g.images))
	copy(out, g.images)
	return out
}

// Albums returns the device albums from the last merge followed by the
// user-created albums, with user album counts derived from the current
// image collection.
func (g *Gallery) Albums() []domain.Album {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.Album, 0, len(g.deviceAlbums)+len(g.userAlbums))
	out = append(out, g.deviceAlbums...)
	for _, album := range g.userAlbums {
		album.Count = 0
		for i := range g.images {
			if g.images[i].AlbumID == album.ID {
				album.Count++
			}
		}
		out = append(out, album)
	}
	return out
}

// GetImage looks up one image by id. Returns domain.ErrNotFound for
// unknown ids; an explicit outcome, not an exceptional one.
func (g *Gallery) GetImage(id string) (domain.Image, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for i := range g.images {
		if g.images[i].ID == id {
			return g.images[i], nil
		}
	}
	return domain.Image{}, domain.ErrNotFound
}

// ImagesInAlbum returns images whose AlbumID matches. AlbumID is a weak
// reference, so an empty result is normal for freshly created albums.
func (g *Gallery) ImagesInAlbum(albumID string) []domain.Image {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []domain.Image
	for i := range g.images {
		if g.images[i].AlbumID == albumID {
			out = append(out, g.images[i])
		}
	}
	return out
}

// CreateAlbum creates a user album and persists the user album list.
func (g *Gallery) CreateAlbum(ctx context.Context, title string) (domain.Album, error) {
	if title == "" {
		return domain.Album{}, fmt.Errorf("%w: empty album title", domain.ErrInvalidInput)
	}

	album := domain.Album{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: g.clock(),
	}

	g.mu.Lock()
	g.userAlbums = append(g.userAlbums, album)
	snapshot := make([]domain.Album, len(g.userAlbums))
	copy(snapshot, g.userAlbums)
	g.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return domain.Album{}, fmt.Errorf("encode user albums: %w", err)
	}
	if err := g.store.Set(ctx, driven.KeyUserAlbums, raw); err != nil {
		return domain.Album{}, fmt.Errorf("save user albums: %w", err)
	}
	return album, nil
}

// AllTags returns the distinct tags across the collection, sorted.
func (g *Gallery) AllTags() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	seen := make(map[string]bool)
	for i := range g.images {
		for _, tag := range g.images[i].Tags {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ToggleFavorite flips the favorite flag for an image id and persists
// the favorites set.
func (g *Gallery) ToggleFavorite(ctx context.Context, id string) error {
	g.mu.Lock()
	if g.favorites[id] {
		delete(g.favorites, id)
	} else {
		g.favorites[id] = true
	}
	g.mu.Unlock()

	return g.persistFavorites(ctx)
}

// Favorites returns the favorite image ids, sorted.
func (g *Gallery) Favorites() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, len(g.favorites))
	for id := range g.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// saveFavorites persists the favorites set, logging failures.
func (g *Gallery) saveFavorites(ctx context.Context) {
	if err := g.persistFavorites(ctx); err != nil {
		logger.Error("Persist favorites failed: %v", err)
	}
}

func (g *Gallery) persistFavorites(ctx context.Context) error {
	raw, err := json.Marshal(g.Favorites())
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := g.store.Set(ctx, driven.KeyFavorites, raw); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

// Loading reports whether a Load is in flight.
func (g *Gallery) Loading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loading
}
