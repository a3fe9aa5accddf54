package genai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")

		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hola "},{"text":"mundo"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(&ClientOptions{BaseURL: srv.URL, ApiKey: "test-key"})

	text, err := client.GenerateContent(context.Background(), "gemini-2.0-flash", "saluda")
	require.NoError(t, err)

	assert.Equal(t, "Hola mundo", text)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotBody, `"saluda"`)
}

func TestGenerateContent_DefaultModel(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(&ClientOptions{BaseURL: srv.URL})

	_, err := client.GenerateContent(context.Background(), "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
}

func TestGenerateContent_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	client := NewClient(&ClientOptions{BaseURL: srv.URL, ApiKey: "bad-key"})

	_, err := client.GenerateContent(context.Background(), "gemini-2.0-flash", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerateContent_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewClient(&ClientOptions{BaseURL: srv.URL})

	_, err := client.GenerateContent(context.Background(), "gemini-2.0-flash", "prompt")
	require.Error(t, err)
}

func TestGenerateContent_ExtraHeaders(t *testing.T) {
	var gotHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Custom")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(&ClientOptions{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Custom": "value"},
	})

	_, err := client.GenerateContent(context.Background(), "gemini-2.0-flash", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "value", gotHeader)
}
