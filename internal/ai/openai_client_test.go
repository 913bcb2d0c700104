package ai

import (
	"BackgroundRemover/internal/config"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOpenAITestClient(t *testing.T, h http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	oClient := openai.NewClient(
		option.WithBaseURL(srv.URL),
		option.WithAPIKey("sk-test"),
		option.WithMaxRetries(0),
	)
	return NewOpenAIClient(&oClient, config.OpenAIConfig{}, zap.NewNop().Sugar())
}

func TestOpenAIClient_ImagesEdit(t *testing.T) {
	c := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/edits", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "gpt-image-1", r.FormValue("model"))
		assert.Equal(t, "transparent", r.FormValue("background"))
		assert.Equal(t, "png", r.FormValue("output_format"))
		assert.Equal(t, "cut it out", r.FormValue("prompt"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"created":1,"data":[{"b64_json":"QUFB"},{"b64_json":"QkJC"}]}`)
	})

	reply, err := c.Generate(context.Background(), Request{Parts: []Part{
		InlinePart("image/jpeg", "eA=="),
		TextPart("cut it out"),
	}})
	require.NoError(t, err)
	require.Len(t, reply.Candidates, 1)
	parts := reply.Candidates[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "QUFB", parts[0].InlineData.Data)
	assert.Equal(t, "QkJC", parts[1].InlineData.Data)
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	c := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"bad image","type":"invalid_request_error"}}`)
	})

	_, err := c.Generate(context.Background(), Request{Parts: []Part{InlinePart("image/png", "eA==")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestOpenAIClient_NoImagePart(t *testing.T) {
	c := NewOpenAIClient(&openai.Client{}, config.OpenAIConfig{}, zap.NewNop().Sugar())
	_, err := c.Generate(context.Background(), Request{Parts: []Part{TextPart("only text")}})
	require.Error(t, err)
}
