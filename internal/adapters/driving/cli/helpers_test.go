package cli

import (
	"context"
	"time"

	mediamem "github.com/photon-labs/glance/internal/adapters/driven/media/memory"
	storagemem "github.com/photon-labs/glance/internal/adapters/driven/storage/memory"
	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/services"
)

// setupTestServices wires the command tree to in-memory services with a
// small fixture gallery. Returns a cleanup that restores the nil state.
// Flag variables are reset so earlier tests cannot leak values.
func setupTestServices() func() {
	searchLimit = 0
	searchJSON = false
	scanWatch = false
	imagesTag = ""
	imagesSort = "date"
	imagesFavorites = false

	assets := []domain.MediaAsset{
		{
			ID:        "asset-1",
			URI:       "file:///photos/sunset.jpg",
			FileName:  "sunset.jpg",
			CreatedAt: time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
			AlbumID:   "alb-1",
		},
		{
			ID:        "asset-2",
			URI:       "file:///photos/city.jpg",
			FileName:  "city.jpg",
			CreatedAt: time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		},
	}
	albums := []domain.MediaAlbum{{ID: "alb-1", Title: "Evenings", AssetCount: 1}}

	store := storagemem.NewKVStore()
	media := mediamem.NewMediaSource(assets, albums)

	gallery := services.NewGallery(store, media)
	ctx := context.Background()
	gallery.Load(ctx)
	gallery.MergeMediaAssets(ctx, assets, albums)

	caption := "Beautiful sunset over the ocean"
	gallery.UpdateImage(ctx, "asset-1", domain.AnnotationPatch{
		Caption: &caption,
		Tags:    []string{"sunset", "beach"},
	})

	galleryService = gallery
	searchService = services.NewSearcher(gallery)
	ingestService = services.NewIngestor(nil, gallery)
	libraryService = services.NewLibrary(media, gallery)

	return func() {
		galleryService = nil
		searchService = nil
		ingestService = nil
		libraryService = nil
		configStore = nil
	}
}
