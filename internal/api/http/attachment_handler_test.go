package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"insa-partnership-backend/internal/storage"
)

func newUploadFixture(t *testing.T, maxFileSizeMB int64) *AttachmentHandler {
	t.Helper()
	store, err := storage.NewAttachmentStore("http://localhost:8080", t.TempDir())
	if err != nil {
		t.Fatalf("error creating attachment store: %v", err)
	}
	return NewAttachmentHandler(store, maxFileSizeMB)
}

func TestAttachmentHandler_Upload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler := newUploadFixture(t, 1)
		body := bytes.Repeat([]byte("a"), 1024)
		r := httptest.NewRequest(http.MethodPut, "/attachments?filename=proposal.pdf", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.Upload(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp uploadResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(len(body)), resp.Size)
		assert.Contains(t, resp.Key, "proposal.pdf")
	})

	t.Run("MissingFilename", func(t *testing.T) {
		handler := newUploadFixture(t, 1)
		r := httptest.NewRequest(http.MethodPut, "/attachments", bytes.NewReader([]byte("x")))
		w := httptest.NewRecorder()

		handler.Upload(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("OversizeRejected", func(t *testing.T) {
		handler := newUploadFixture(t, 1)
		body := bytes.Repeat([]byte("a"), 1<<20+1)
		r := httptest.NewRequest(http.MethodPut, "/attachments?filename=huge.bin", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.Upload(w, r)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
