// internal/handler/files_test.go
package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adoptyme/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesHandlerServesStoredObject(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SaveFile(context.Background(), "qr", "tag.png", []byte("png-bytes")))

	srv := httptest.NewServer(NewFilesHandler(store).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/qr/tag.png")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestFilesHandlerUnknownObject(t *testing.T) {
	srv := httptest.NewServer(NewFilesHandler(storage.NewMemoryStore()).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/qr/missing.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFilesHandlerRejectsUnknownPrefix(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SaveFile(context.Background(), "secrets", "key.txt", []byte("nope")))

	srv := httptest.NewServer(NewFilesHandler(store).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/secrets/key.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFilesHandlerRejectsTraversal(t *testing.T) {
	srv := httptest.NewServer(NewFilesHandler(storage.NewMemoryStore()).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/qr/..%2Fother")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
