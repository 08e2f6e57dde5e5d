package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagemem "github.com/photon-labs/glance/internal/adapters/driven/storage/memory"
	"github.com/photon-labs/glance/internal/core/domain"
)

// mockAnnotator implements driven.Annotator for testing.
type mockAnnotator struct {
	annotation *domain.Annotation
	analyzeErr error
	calls      int
}

func (m *mockAnnotator) Analyze(_ context.Context, _ string) (*domain.Annotation, error) {
	m.calls++
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	if m.annotation != nil {
		return m.annotation, nil
	}
	return &domain.Annotation{}, nil
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestIngestor_Ingest_Success(t *testing.T) {
	gallery := NewGallery(storagemem.NewKVStore(), nil, WithClock(testClock()))
	annotator := &mockAnnotator{annotation: &domain.Annotation{
		Caption: "A golden retriever on the lawn",
		Tags:    []string{"dog", "garden"},
		Objects: []string{"dog", "grass"},
	}}
	ingestor := NewIngestor(annotator, gallery,
		WithIDGenerator(sequentialIDs("img")),
		WithIngestClock(testClock()),
	)

	img, err := ingestor.Ingest(context.Background(), "file:///camera/shot.jpg")

	require.NoError(t, err)
	assert.Equal(t, "img-1", img.ID)
	assert.Equal(t, "A golden retriever on the lawn", img.Caption)
	assert.Equal(t, []string{"dog", "garden"}, img.Tags)
	assert.Equal(t, 1, annotator.calls)

	// Committed to the gallery, newest first.
	images := gallery.Images()
	require.Len(t, images, 1)
	assert.Equal(t, "img-1", images[0].ID)
}

func TestIngestor_Ingest_AnnotationFailure(t *testing.T) {
	gallery := NewGallery(storagemem.NewKVStore(), nil)
	annotator := &mockAnnotator{analyzeErr: errors.New("model unavailable")}
	ingestor := NewIngestor(annotator, gallery, WithIDGenerator(sequentialIDs("img")))

	_, err := ingestor.Ingest(context.Background(), "file:///camera/shot.jpg")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnnotationFailed)
	// The asset never reaches the gallery and is not retried.
	assert.Empty(t, gallery.Images())
	assert.Equal(t, 1, annotator.calls)

	queue := ingestor.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, domain.IngestStateFailed, queue[0].State)
}

func TestIngestor_Ingest_CommitFailure(t *testing.T) {
	store := &failingStore{
		MetadataStore: storagemem.NewKVStore(),
		setErr:        errors.New("disk full"),
	}
	gallery := NewGallery(store, nil)
	ingestor := NewIngestor(&mockAnnotator{}, gallery, WithIDGenerator(sequentialIDs("img")))

	_, err := ingestor.Ingest(context.Background(), "file:///camera/shot.jpg")

	require.Error(t, err)
	queue := ingestor.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, domain.IngestStateFailed, queue[0].State)
}

func TestIngestor_Ingest_NilAnnotatorDegrades(t *testing.T) {
	gallery := NewGallery(storagemem.NewKVStore(), nil, WithClock(testClock()))
	ingestor := NewIngestor(nil, gallery, WithIDGenerator(sequentialIDs("img")))

	img, err := ingestor.Ingest(context.Background(), "file:///camera/shot.jpg")

	require.NoError(t, err)
	assert.Empty(t, img.Caption)
	assert.NotNil(t, img.Tags)
	assert.Len(t, gallery.Images(), 1)
}

func TestIngestor_Queue_CompletedLingersThenDisappears(t *testing.T) {
	gallery := NewGallery(storagemem.NewKVStore(), nil)
	ingestor := NewIngestor(&mockAnnotator{}, gallery,
		WithIDGenerator(sequentialIDs("img")),
		WithCompletedGrace(30*time.Millisecond),
	)

	_, err := ingestor.Ingest(context.Background(), "file:///camera/shot.jpg")
	require.NoError(t, err)

	queue := ingestor.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, domain.IngestStateCompleted, queue[0].State)
	assert.Equal(t, 100, queue[0].Progress)

	assert.Eventually(t, func() bool {
		return len(ingestor.Queue()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestIngestor_Queue_InsertionOrder(t *testing.T) {
	gallery := NewGallery(storagemem.NewKVStore(), nil)
	ingestor := NewIngestor(&mockAnnotator{analyzeErr: errors.New("down")}, gallery,
		WithIDGenerator(sequentialIDs("img")))
	ctx := context.Background()

	_, _ = ingestor.Ingest(ctx, "file:///a.jpg") //nolint:errcheck // failure is the fixture
	_, _ = ingestor.Ingest(ctx, "file:///b.jpg") //nolint:errcheck // failure is the fixture

	queue := ingestor.Queue()
	require.Len(t, queue, 2)
	assert.Equal(t, "img-1", queue[0].ID)
	assert.Equal(t, "img-2", queue[1].ID)
}
