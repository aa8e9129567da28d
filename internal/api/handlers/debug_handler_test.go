package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/smart-health-assistant/internal/api/handlers"
)

type stubTextGenerator struct {
	output string
	err    error
}

func (s *stubTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.output, s.err
}

func TestDebugHandler_Disabled(t *testing.T) {
	handler := handlers.NewDebugHandler(&stubTextGenerator{}, false)

	req := httptest.NewRequest("POST", "/api/debug/ai", strings.NewReader(`{"prompt":"hello"}`))
	w := httptest.NewRecorder()
	handler.GenerateRaw(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDebugHandler_NoBackend(t *testing.T) {
	handler := handlers.NewDebugHandler(nil, true)

	req := httptest.NewRequest("POST", "/api/debug/ai", strings.NewReader(`{"prompt":"hello"}`))
	w := httptest.NewRecorder()
	handler.GenerateRaw(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDebugHandler_ReturnsRawAndParsed(t *testing.T) {
	generator := &stubTextGenerator{
		output: "```json\n{\"urgency\": \"High\", \"summary\": \"test\"}\n```",
	}
	handler := handlers.NewDebugHandler(generator, true)

	req := httptest.NewRequest("POST", "/api/debug/ai", strings.NewReader(`{"prompt":"triage this"}`))
	w := httptest.NewRecorder()
	handler.GenerateRaw(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Raw    string `json:"raw"`
		Parsed *struct {
			Urgency string `json:"urgency"`
		} `json:"parsed"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, generator.output, response.Raw)
	require.NotNil(t, response.Parsed)
	assert.Equal(t, "High", response.Parsed.Urgency)
}

func TestDebugHandler_GenerationFailure(t *testing.T) {
	handler := handlers.NewDebugHandler(&stubTextGenerator{err: errors.New("backend down")}, true)

	req := httptest.NewRequest("POST", "/api/debug/ai", strings.NewReader(`{"prompt":"x"}`))
	w := httptest.NewRecorder()
	handler.GenerateRaw(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["error"], "backend down")
}

func TestDebugHandler_UnparseableOutput(t *testing.T) {
	handler := handlers.NewDebugHandler(&stubTextGenerator{output: "not json at all"}, true)

	req := httptest.NewRequest("POST", "/api/debug/ai", strings.NewReader(`{"prompt":"x"}`))
	w := httptest.NewRecorder()
	handler.GenerateRaw(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "not json at all", response["raw"])
	assert.Nil(t, response["parsed"])
}
