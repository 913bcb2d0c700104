package ai

import (
	"BackgroundRemover/internal/config"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRESTClient(t *testing.T, h http.HandlerFunc) *GeminiRESTClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewGeminiRESTClient(config.GeminiConfig{APIKey: "k", Model: "m-1", Endpoint: srv.URL}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return c
}

func TestGeminiREST_SendsPartsInOrder(t *testing.T) {
	var got restRequest
	c := newRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/m-1:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		b, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(b, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[
			{"text":"here you go"},
			{"inlineData":{"mimeType":"image/png","data":"QUFB"}}]}}]}`)
	})

	reply, err := c.Generate(context.Background(), Request{Parts: []Part{
		InlinePart("image/jpeg", "eA=="),
		TextPart("remove background"),
	}})
	require.NoError(t, err)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Equal(t, "image/jpeg", got.Contents[0].Parts[0].InlineData.MimeType)
	assert.Equal(t, "remove background", got.Contents[0].Parts[1].Text)
	assert.Equal(t, []string{"IMAGE", "TEXT"}, got.GenerationConfig.ResponseModalities)

	require.Len(t, reply.Candidates, 1)
	require.Len(t, reply.Candidates[0].Parts, 2)
	assert.Equal(t, "here you go", reply.Candidates[0].Parts[0].Text)
	assert.Equal(t, "QUFB", reply.Candidates[0].Parts[1].InlineData.Data)
}

func TestGeminiREST_NonSuccessStatus(t *testing.T) {
	c := newRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"message":"API key not valid"}}`)
	})

	_, err := c.Generate(context.Background(), Request{Parts: []Part{TextPart("x")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiREST_EmptyCandidates(t *testing.T) {
	c := newRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})

	reply, err := c.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Empty(t, reply.Candidates)
}

func TestGeminiREST_MissingKey(t *testing.T) {
	_, err := NewGeminiRESTClient(config.GeminiConfig{Model: "m"}, zap.NewNop().Sugar())
	require.Error(t, err)
}
