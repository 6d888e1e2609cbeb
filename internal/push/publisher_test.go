package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titledesk/title-review/internal/entity"
)

func TestHTTPPublisherPostsResult(t *testing.T) {
	var got entity.ExtractionResult
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewHTTPPublisher(srv.URL, nil)
	result := &entity.ExtractionResult{ID: "extraction-1"}
	require.NoError(t, p.Publish(context.Background(), result))
	assert.Equal(t, "extraction-1", got.ID)
}

func TestHTTPPublisherSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "schema mismatch", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	p := NewHTTPPublisher(srv.URL, nil)
	err := p.Publish(context.Background(), &entity.ExtractionResult{ID: "extraction-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(nil)
	require.NoError(t, p.Publish(context.Background(), &entity.ExtractionResult{ID: "extraction-3"}))
}
