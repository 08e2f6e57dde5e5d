package driven

import (
	"context"

	"github.com/photon-labs/glance/internal/core/domain"
)

// Annotator is the AI image-analysis collaborator. Treated as an opaque,
// potentially slow, potentially failing remote or local call.
//
// Optional: when nil (or permanently unavailable) the gallery still
// functions, serving images with empty annotations.
type Annotator interface {
	// Analyze runs AI analysis on the asset at the given reference and
	// returns the full annotation payload.
	Analyze(ctx context.Context, assetRef string) (*domain.Annotation, error)
}
