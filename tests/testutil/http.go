// Package testutil provides helpers shared by the API-level tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Request performs an in-process HTTP request against the engine.
// A non-nil body is JSON-encoded; an access token adds a bearer header.
func Request(t *testing.T, engine *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

// Envelope mirrors the API response wrapper
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorBody      `json:"error"`
}

// ErrorBody mirrors the API error payload
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeData asserts a successful envelope and unmarshals its data field
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "expected success envelope, got %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// DecodeError asserts an error envelope and returns its body
func DecodeError(t *testing.T, rec *httptest.ResponseRecorder) *ErrorBody {
	t.Helper()

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.False(t, envelope.Success, "expected error envelope, got %s", rec.Body.String())
	require.NotNil(t, envelope.Error)
	return envelope.Error
}

// RequireStatus fails the test with the response body when the status
// does not match
func RequireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
