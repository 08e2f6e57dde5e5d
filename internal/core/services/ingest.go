package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driven"
	"github.com/photon-labs/glance/internal/core/ports/driving"
	"github.com/photon-labs/glance/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driving.IngestService = (*Ingestor)(nil)

// DefaultCompletedGrace is how long completed entries stay visible in
// the processing queue. A UI affordance, not a correctness mechanism.
const DefaultCompletedGrace = 2 * time.Second

// Ingestor runs captured or imported assets through the annotator and
// commits them to the gallery. One state machine per asset:
// Pending -> Analyzing -> Committing -> Completed, with Failed reachable
// from Analyzing and Committing. Assets are independent; concurrent
// ingestions need no global lock.
type Ingestor struct {
	annotator driven.Annotator
	gallery   driving.GalleryService

	grace time.Duration
	clock func() time.Time
	newID func() string

	mu    sync.Mutex
	queue map[string]domain.IngestStatus
	order []string
}

// IngestorOption customises an Ingestor.
type IngestorOption func(*Ingestor)

// WithCompletedGrace overrides the queue grace period.
func WithCompletedGrace(d time.Duration) IngestorOption {
	return func(i *Ingestor) { i.grace = d }
}

// WithIngestClock overrides the time source. Useful for testing.
func WithIngestClock(clock func() time.Time) IngestorOption {
	return func(i *Ingestor) { i.clock = clock }
}

// WithIDGenerator overrides image id generation. Useful for testing.
func WithIDGenerator(gen func() string) IngestorOption {
	return func(i *Ingestor) { i.newID = gen }
}

// NewIngestor creates an ingestion pipeline. The annotator may be nil;
// assets are then committed with empty annotations.
func NewIngestor(annotator driven.Annotator, gallery driving.GalleryService, opts ...IngestorOption) *Ingestor {
	ing := &Ingestor{
		annotator: annotator,
		gallery:   gallery,
		grace:     DefaultCompletedGrace,
		clock:     time.Now,
		newID:     uuid.NewString,
		queue:     make(map[string]domain.IngestStatus),
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// Ingest runs one asset through annotation and commit. On failure the
// asset is not added to the gallery and the error is returned to the
// caller; there is no auto-retry. Progress steps are UI feedback only.
func (i *Ingestor) Ingest(ctx context.Context, assetRef string) (domain.Image, error) {
	id := i.newID()

	i.setStatus(domain.IngestStatus{
		ID:       id,
		State:    domain.IngestStatePending,
		Progress: 0,
		Message:  "Queued",
	})

	logger.Section("Ingest")
	logger.Debug("Ingesting %s as %s", assetRef, id)

	i.setStatus(domain.IngestStatus{
		ID:       id,
		State:    domain.IngestStateAnalyzing,
		Progress: 25,
		Message:  "Extracting features...",
	})

	annotation, err := i.analyze(ctx, assetRef)
	if err != nil {
		i.fail(id, "Analysis failed")
		return domain.Image{}, fmt.Errorf("%w: %w", domain.ErrAnnotationFailed, err)
	}

	i.setStatus(domain.IngestStatus{
		ID:       id,
		State:    domain.IngestStateAnalyzing,
		Progress: 50,
		Message:  "Generating caption...",
	})

	now := i.clock()
	img := domain.Image{
		ID:         id,
		URI:        assetRef,
		FileName:   fmt.Sprintf("IMG_%d.jpg", now.Unix()),
		CreatedAt:  now,
		ModifiedAt: now,
		Caption:    annotation.Caption,
		Tags:       annotation.Tags,
		Metadata: domain.ImageMetadata{
			Objects:     annotation.Objects,
			Colors:      annotation.Colors,
			People:      annotation.People,
			Mood:        annotation.Mood,
			Scene:       annotation.Scene,
			TextContent: annotation.TextContent,
		},
		Embedding: annotation.Embedding,
	}
	if img.Tags == nil {
		img.Tags = []string{}
	}

	i.setStatus(domain.IngestStatus{
		ID:       id,
		State:    domain.IngestStateCommitting,
		Progress: 75,
		Message:  "Saving to gallery...",
	})

	if err := i.gallery.AddImage(ctx, img); err != nil {
		i.fail(id, "Save failed")
		return domain.Image{}, fmt.Errorf("commit image: %w", err)
	}

	i.setStatus(domain.IngestStatus{
		ID:       id,
		State:    domain.IngestStateCompleted,
		Progress: 100,
		Message:  "Complete!",
	})
	i.scheduleRemoval(id)

	logger.Info("Ingested %s (%s)", id, img.FileName)
	return img, nil
}

// analyze calls the annotator, degrading to an empty annotation when
// none is configured.
func (i *Ingestor) analyze(ctx context.Context, assetRef string) (*domain.Annotation, error) {
	if i.annotator == nil {
		logger.Warn("No annotator configured, committing %s with empty annotation", assetRef)
		return &domain.Annotation{}, nil
	}
	annotation, err := i.annotator.Analyze(ctx, assetRef)
	if err != nil {
		return nil, err
	}
	return annotation, nil
}

// Queue returns the visible processing queue in insertion order.
func (i *Ingestor) Queue() []domain.IngestStatus {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]domain.IngestStatus, 0, len(i.order))
	for _, id := range i.order {
		if status, ok := i.queue[id]; ok {
			out = append(out, status)
		}
	}
	return out
}

func (i *Ingestor) setStatus(status domain.IngestStatus) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.queue[status.ID]; !ok {
		i.order = append(i.order, status.ID)
	}
	i.queue[status.ID] = status
}

func (i *Ingestor) fail(id, message string) {
	i.setStatus(domain.IngestStatus{
		ID:      id,
		State:   domain.IngestStateFailed,
		Message: message,
	})
}

// scheduleRemoval drops a completed entry from the visible queue after
// the grace period.
func (i *Ingestor) scheduleRemoval(id string) {
	time.AfterFunc(i.grace, func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		delete(i.queue, id)
		for idx, queued := range i.order {
			if queued == id {
				i.order = append(i.order[:idx], i.order[idx+1:]...)
				break
			}
		}
	})
}
