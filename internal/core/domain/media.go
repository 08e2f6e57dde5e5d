package domain

import "time"

// MediaAsset is one photo as reported by the device media source.
// The media source is authoritative for identity, dimensions,
// timestamps and file name; it never carries AI metadata.
type MediaAsset struct {
	// ID is the device-assigned asset identifier.
	ID string `json:"id"`

	// URI locates the pixel data.
	URI string `json:"uri"`

	// FileName is the asset file name.
	FileName string `json:"fileName"`

	// CreatedAt is the capture/creation time.
	CreatedAt time.Time `json:"createdAt"`

	// ModifiedAt is the last modification time.
	ModifiedAt time.Time `json:"modifiedAt"`

	// Size is the file size in bytes, zero when unknown.
	Size int64 `json:"size"`

	// Width and Height are pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// AlbumID is the containing album, empty when unfiled.
	AlbumID string `json:"albumId,omitempty"`
}

// MediaAlbum is one album as reported by the device media source.
type MediaAlbum struct {
	// ID is the device-assigned album identifier.
	ID string `json:"id"`

	// Title is the album display name.
	Title string `json:"title"`

	// AssetCount is the number of assets the source reports for this
	// album. May be stale.
	AssetCount int `json:"assetCount"`

	// CreatedAt is when the album was created, zero when unknown.
	CreatedAt time.Time `json:"createdAt"`
}

// AssetPage is one page of a cursor-paginated asset listing.
// Pages must be fetched sequentially: NextCursor depends on the
// previous page's result.
type AssetPage struct {
	// Assets are the assets in this page.
	Assets []MediaAsset

	// NextCursor resumes the listing after this page.
	NextCursor string

	// HasMore indicates further pages exist.
	HasMore bool
}
