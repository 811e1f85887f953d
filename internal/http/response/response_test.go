package response

import (
	"encoding/json/v2"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/photovault/photovault-server/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"message": "test"}
	JSON(w, http.StatusOK, data, discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Error)
}

func TestJSON_NilLogger(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"message": "test"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()

	Created(w, map[string]string{"id": "photo-abc"}, discardLogger())

	assert.Equal(t, http.StatusCreated, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError_Generic(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusInternalServerError, "something went wrong", discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Equal(t, "something went wrong", result.Error)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "not found error",
			err:        domainerrors.NotFoundf("photo %s not found", "photo-1"),
			wantStatus: http.StatusNotFound,
			wantError:  "photo photo-1 not found",
		},
		{
			name:       "validation error",
			err:        domainerrors.Validation("name is required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "name is required",
		},
		{
			name:       "transport error",
			err:        domainerrors.Transport("storage unavailable"),
			wantStatus: http.StatusBadGateway,
			wantError:  "storage unavailable",
		},
		{
			name:       "unknown error becomes 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err, discardLogger())

			assert.Equal(t, tt.wantStatus, w.Code)

			var result Envelope
			err := json.Unmarshal(w.Body.Bytes(), &result)
			require.NoError(t, err)

			assert.False(t, result.Success)
			assert.Equal(t, tt.wantError, result.Error)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()

	err := domainerrors.ValidationWithDetails("validation failed", map[string]string{
		"name": "is required",
	})
	HandleError(w, err, discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	details, ok := result.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
}

func TestStatusCodeBoundary(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		expectedSuccess bool
	}{
		{"200 OK", 200, true},
		{"201 Created", 201, true},
		{"399 Custom Success", 399, true},
		{"400 Bad Request", 400, false},
		{"404 Not Found", 404, false},
		{"500 Internal Server Error", 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSON(w, tt.status, nil, discardLogger())

			var result Envelope
			err := json.Unmarshal(w.Body.Bytes(), &result)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedSuccess, result.Success, "Status %d should have Success=%v", tt.status, tt.expectedSuccess)
		})
	}
}
