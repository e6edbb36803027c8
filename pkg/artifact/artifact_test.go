package artifact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsS3URL(t *testing.T) {
	assert.True(t, IsS3URL("s3://bucket/key"))
	assert.False(t, IsS3URL("https://example.com/worker.wasm"))
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("wasm-bytes"))
	}))
	defer srv.Close()

	body, err := Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("wasm-bytes"), body)
}

func TestFetchHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
