package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-labs/glance/internal/core/domain"
)

func TestAnnotator_Analyze(t *testing.T) {
	var gotRequest analyzeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/analyze", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(analyzeResponse{ //nolint:errcheck // test server
			Caption: "A cat on a windowsill",
			Tags:    []string{"cat", "window"},
			Objects: []string{"cat"},
			Mood:    "calm",
		})
	}))
	defer server.Close()

	annotator := NewAnnotator(Config{BaseURL: server.URL, Model: "test-model"})

	annotation, err := annotator.Analyze(context.Background(), "file:///photos/cat.jpg")

	require.NoError(t, err)
	assert.Equal(t, "test-model", gotRequest.Model)
	assert.Equal(t, "file:///photos/cat.jpg", gotRequest.Image)
	assert.Equal(t, "A cat on a windowsill", annotation.Caption)
	assert.Equal(t, []string{"cat", "window"}, annotation.Tags)
	assert.Equal(t, "calm", annotation.Mood)
}

func TestAnnotator_Analyze_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	annotator := NewAnnotator(Config{BaseURL: server.URL})

	_, err := annotator.Analyze(context.Background(), "file:///photos/cat.jpg")

	assert.ErrorIs(t, err, domain.ErrAnnotationFailed)
}

func TestAnnotator_Analyze_Unreachable(t *testing.T) {
	annotator := NewAnnotator(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := annotator.Analyze(context.Background(), "file:///photos/cat.jpg")

	assert.ErrorIs(t, err, domain.ErrAnnotatorUnavailable)
}

func TestAnnotator_Analyze_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json")) //nolint:errcheck // test server
	}))
	defer server.Close()

	annotator := NewAnnotator(Config{BaseURL: server.URL})

	_, err := annotator.Analyze(context.Background(), "file:///photos/cat.jpg")

	assert.ErrorIs(t, err, domain.ErrAnnotationFailed)
}

func TestNewAnnotator_Defaults(t *testing.T) {
	annotator := NewAnnotator(Config{})

	require.NotNil(t, annotator)
	assert.Equal(t, DefaultBaseURL, annotator.baseURL)
	assert.Equal(t, DefaultModel, annotator.model)
	assert.Equal(t, DefaultTimeout, annotator.client.Timeout)
}
