package driving

import "context"

// LibraryService loads the device photo library and reconciles it into
// the gallery.
type LibraryService interface {
	// Scan requests access, pages through all assets and albums, and
	// merges them into the gallery. Permission denial leaves the gallery
	// with an empty media collection and is not an error.
	Scan(ctx context.Context) error

	// Status returns the current scan status.
	Status() ScanStatus

	// Watch re-scans whenever the media source reports a change.
	// Blocks until ctx is cancelled. Returns domain.ErrWatchUnsupported
	// when the source cannot push events.
	Watch(ctx context.Context) error
}

// ScanStatus represents the progress of a library scan.
type ScanStatus struct {
	// Running indicates a scan is in progress.
	Running bool

	// AssetsLoaded is the number of assets fetched so far.
	AssetsLoaded int

	// AlbumsLoaded is the number of albums fetched.
	AlbumsLoaded int

	// ErrorCount is the number of non-fatal errors encountered.
	ErrorCount int
}
