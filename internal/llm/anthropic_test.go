package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Complete(t *testing.T) {
	t.Run("sends prompt and returns text", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
			assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"content": [{"type": "text", "text": "hello back"}]}`))
		}))
		defer server.Close()

		client := NewClient("test-key", "test-model").WithBaseURL(server.URL)
		reply, err := client.Complete(context.Background(), "hello", 100)

		require.NoError(t, err)
		assert.Equal(t, "hello back", reply)
		assert.Equal(t, "test-model", gotBody["model"])
		assert.Equal(t, float64(100), gotBody["max_tokens"])
	})

	t.Run("surfaces api errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
		}))
		defer server.Close()

		client := NewClient("test-key", "test-model").WithBaseURL(server.URL)
		_, err := client.Complete(context.Background(), "hello", 100)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "slow down")
	})

	t.Run("empty content is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"content": []}`))
		}))
		defer server.Close()

		client := NewClient("test-key", "test-model").WithBaseURL(server.URL)
		_, err := client.Complete(context.Background(), "hello", 100)

		require.Error(t, err)
	})
}

func TestClient_CompleteWithImages(t *testing.T) {
	var gotBody struct {
		Messages []struct {
			Content []struct {
				Type   string `json:"type"`
				Text   string `json:"text"`
				Source *struct {
					Type      string `json:"type"`
					MediaType string `json:"media_type"`
					Data      string `json:"data"`
				} `json:"source"`
			} `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"content": [{"type": "text", "text": "{}"}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model").WithBaseURL(server.URL)
	_, err := client.CompleteWithImages(context.Background(), "describe", []string{"AAAA", "BBBB"}, 100)

	require.NoError(t, err)
	require.Len(t, gotBody.Messages, 1)
	content := gotBody.Messages[0].Content
	require.Len(t, content, 3)
	assert.Equal(t, "image", content[0].Type)
	require.NotNil(t, content[0].Source)
	assert.Equal(t, "base64", content[0].Source.Type)
	assert.Equal(t, "image/jpeg", content[0].Source.MediaType)
	assert.Equal(t, "AAAA", content[0].Source.Data)
	assert.Equal(t, "text", content[2].Type)
	assert.Equal(t, "describe", content[2].Text)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, StripCodeFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, StripCodeFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, StripCodeFences(`{"a": 1}`))
	assert.Equal(t, "", StripCodeFences("```json\n```"))
}
