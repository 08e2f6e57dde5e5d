package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-labs/glance/internal/core/domain"
)

func fixtureAssets(n int) []domain.MediaAsset {
	assets := make([]domain.MediaAsset, n)
	for i := range assets {
		assets[i] = domain.MediaAsset{
			ID:       fmt.Sprintf("asset-%02d", i),
			FileName: fmt.Sprintf("IMG_%02d.jpg", i),
		}
	}
	return assets
}

func TestMediaSource_RequestAccess(t *testing.T) {
	source := NewMediaSource(nil, nil)
	ctx := context.Background()

	require.NoError(t, source.RequestAccess(ctx))

	source.DenyAccess(true)
	err := source.RequestAccess(ctx)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	source.DenyAccess(false)
	assert.NoError(t, source.RequestAccess(ctx))
}

func TestMediaSource_ListAssets_Pagination(t *testing.T) {
	source := NewMediaSource(fixtureAssets(7), nil)
	ctx := context.Background()

	var collected []domain.MediaAsset
	cursor := ""
	pages := 0
	for {
		page, err := source.ListAssets(ctx, 3, cursor)
		require.NoError(t, err)
		collected = append(collected, page.Assets...)
		pages++
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	assert.Equal(t, 3, pages)
	require.Len(t, collected, 7)
	assert.Equal(t, "asset-00", collected[0].ID)
	assert.Equal(t, "asset-06", collected[6].ID)
}

func TestMediaSource_ListAssets_InvalidPageSize(t *testing.T) {
	source := NewMediaSource(fixtureAssets(3), nil)

	_, err := source.ListAssets(context.Background(), 0, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMediaSource_ListAssets_EmptyLibrary(t *testing.T) {
	source := NewMediaSource(nil, nil)

	page, err := source.ListAssets(context.Background(), 10, "")

	require.NoError(t, err)
	assert.Empty(t, page.Assets)
	assert.False(t, page.HasMore)
}

func TestMediaSource_AlbumCover(t *testing.T) {
	assets := fixtureAssets(3)
	assets[1].AlbumID = "alb-1"
	assets[2].AlbumID = "alb-1"
	source := NewMediaSource(assets, []domain.MediaAlbum{{ID: "alb-1", Title: "Trips"}})
	ctx := context.Background()

	cover, err := source.AlbumCover(ctx, "alb-1")
	require.NoError(t, err)
	assert.Equal(t, "asset-01", cover.ID)

	_, err = source.AlbumCover(ctx, "alb-unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMediaSource_FailCover(t *testing.T) {
	assets := fixtureAssets(1)
	assets[0].AlbumID = "alb-1"
	source := NewMediaSource(assets, []domain.MediaAlbum{{ID: "alb-1"}})
	source.FailCover("alb-1")

	_, err := source.AlbumCover(context.Background(), "alb-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMediaSource_SetAssets(t *testing.T) {
	source := NewMediaSource(fixtureAssets(5), nil)
	source.SetAssets(fixtureAssets(2))

	page, err := source.ListAssets(context.Background(), 10, "")

	require.NoError(t, err)
	assert.Len(t, page.Assets, 2)
}
