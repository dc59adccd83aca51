package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/tutor-service/internal/config"
)

func newTestClient(t *testing.T, key string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(&config.Config{GeminiURL: srv.URL + "/", GeminiModel: "test-model", GeminiAPIKey: key}, logger)
}

func TestClient_Generate(t *testing.T) {
	c := newTestClient(t, "k-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k-1", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.RawQuery)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "summarise", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"All good."}]}}]}`))
	})

	text, err := c.Generate(context.Background(), "summarise")
	require.NoError(t, err)
	assert.Equal(t, "All good.", text)
}

func TestClient_Generate_Failures(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})
		_, err := c.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("upstream status", func(t *testing.T) {
		c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})
		_, err := c.Generate(context.Background(), "x")
		var upstream *UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
		assert.Contains(t, upstream.Body, "quota exceeded")
	})

	t.Run("transport error hides key", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		logger := logrus.New()
		logger.SetOutput(io.Discard)
		c := NewClient(&config.Config{GeminiURL: srv.URL, GeminiModel: "m", GeminiAPIKey: "SUPERSECRETKEY"}, logger)

		_, err := c.Generate(context.Background(), "x")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "SUPERSECRETKEY")
	})

	t.Run("empty completion", func(t *testing.T) {
		c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		})
		_, err := c.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("blank text", func(t *testing.T) {
		c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`))
		})
		_, err := c.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})
}
