package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var gotRequest generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		json.NewEncoder(w).Encode(generateResponse{Response: "Machines may be conscious.", Done: true})
	}))
	defer srv.Close()

	s := NewLLMService(Config{BaseURL: srv.URL, Model: "test-model"})

	text, err := s.Generate(context.Background(), "What is machine consciousness?", 256)
	require.NoError(t, err)
	assert.Equal(t, "Machines may be conscious.", text)

	assert.Equal(t, "test-model", gotRequest.Model)
	assert.Equal(t, "What is machine consciousness?", gotRequest.Prompt)
	assert.False(t, gotRequest.Stream)
	require.NotNil(t, gotRequest.Options)
	assert.Equal(t, 256, gotRequest.Options.NumPredict)
}

func TestGenerate_NoTokenCapOmitsOptions(t *testing.T) {
	var gotRequest generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	}))
	defer srv.Close()

	s := NewLLMService(Config{BaseURL: srv.URL})

	_, err := s.Generate(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Nil(t, gotRequest.Options)
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewLLMService(Config{BaseURL: srv.URL})

	_, err := s.Generate(context.Background(), "q", 10)
	assert.ErrorContains(t, err, "status 500")
}

func TestDefaults(t *testing.T) {
	s := NewLLMService(Config{})
	assert.Equal(t, DefaultModel, s.ModelName())
}
