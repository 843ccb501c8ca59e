package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSON(t *testing.T) {
	t.Run("writes status, content type, and body", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := WriteJSON(w, http.StatusOK, map[string]string{"k": "v"})

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"k":"v"}`, w.Body.String())
	})

	t.Run("nil data writes no body", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := WriteJSON(w, http.StatusNoContent, nil)

		assert.NoError(t, err)
		assert.Empty(t, w.Body.String())
	})
}

func TestErrorWriters(t *testing.T) {
	t.Run("accepted uses the message envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		_ = WriteAccepted(w, "Data received!")

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"message":"Data received!"}`, w.Body.String())
	})

	t.Run("unauthorized defaults to a generic detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		_ = WriteUnauthorized(w, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail":"Invalid authentication token"}`, w.Body.String())
	})

	t.Run("unprocessable carries the field list", func(t *testing.T) {
		w := httptest.NewRecorder()
		_ = WriteUnprocessable(w, []map[string]string{{"field": "event_id"}})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"detail":[{"field":"event_id"}]}`, w.Body.String())
	})

	t.Run("internal error defaults to a generic detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		_ = WriteInternalServerError(w, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"detail":"Internal server error"}`, w.Body.String())
	})

	t.Run("not found defaults to a generic detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		_ = WriteNotFound(w, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"detail":"Resource not found"}`, w.Body.String())
	})
}
