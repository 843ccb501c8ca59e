package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	transcribemock "github.com/sprachlab/event-gateway/services/transcribe/mock"
)

// erroringTranscriber fails every request.
type erroringTranscriber struct{}

func (erroringTranscriber) Transcribe(context.Context, io.Reader) (string, error) {
	return "", errors.New("model unavailable")
}

func multipartAudio(t *testing.T, fieldName string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(fieldName, "audio.wav")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake audio bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestHandleTranscribe(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns a transcription for an uploaded file", func(t *testing.T) {
		h := NewTranscribeHandler(transcribemock.New(), logger)

		body, contentType := multipartAudio(t, "file")
		req := httptest.NewRequest(http.MethodPost, "/transcribe/", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.HandleTranscribe(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Transcription string `json:"transcription"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Transcription)
	})

	t.Run("missing file field rejects with 422", func(t *testing.T) {
		h := NewTranscribeHandler(transcribemock.New(), logger)

		body, contentType := multipartAudio(t, "audio")
		req := httptest.NewRequest(http.MethodPost, "/transcribe/", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.HandleTranscribe(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "file")
	})

	t.Run("non-multipart body rejects with 422", func(t *testing.T) {
		h := NewTranscribeHandler(transcribemock.New(), logger)

		req := httptest.NewRequest(http.MethodPost, "/transcribe/", bytes.NewBufferString("raw"))
		w := httptest.NewRecorder()
		h.HandleTranscribe(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("adapter failure surfaces as generic 500", func(t *testing.T) {
		h := NewTranscribeHandler(erroringTranscriber{}, logger)

		body, contentType := multipartAudio(t, "file")
		req := httptest.NewRequest(http.MethodPost, "/transcribe/", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.HandleTranscribe(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"detail":"Internal server error"}`, w.Body.String())
	})
}
