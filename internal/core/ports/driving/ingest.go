package driving

import (
	"context"

	"github.com/photon-labs/glance/internal/core/domain"
)

// IngestService turns captured or imported asset references into fully
// annotated gallery images.
type IngestService interface {
	// Ingest runs one asset through annotation and commit. Returns the
	// committed image, or an error when annotation or commit failed (the
	// asset is then not added to the gallery). No auto-retry.
	Ingest(ctx context.Context, assetRef string) (domain.Image, error)

	// Queue returns the visible processing queue. Completed entries
	// linger for a short grace period before disappearing.
	Queue() []domain.IngestStatus
}
