package ai

import (
	"BackgroundRemover/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// GeminiRESTClient ходит в generateContent напрямую по HTTP, без SDK.
type GeminiRESTClient struct {
	client *resty.Client
	model  string
	logger *zap.SugaredLogger
}

type restContent struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type restRequest struct {
	Contents         []restContent `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"responseModalities,omitempty"`
	} `json:"generationConfig"`
}

type restReply struct {
	Candidates []struct {
		Content *restContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiRESTClient(cfg config.GeminiConfig, logger *zap.SugaredLogger) (*GeminiRESTClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini rest: GEMINI_API_KEY is not set")
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}
	// Повторы не включаем: повтор запускает пользователь.
	client := resty.New().
		SetBaseURL(endpoint).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)

	return &GeminiRESTClient{client: client, model: cfg.Model, logger: logger}, nil
}

func (c *GeminiRESTClient) Generate(ctx context.Context, req Request) (Reply, error) {
	var body restRequest
	body.Contents = []restContent{{Role: "user", Parts: req.Parts}}
	body.GenerationConfig.ResponseModalities = []string{"IMAGE", "TEXT"}

	started := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("model", c.model).
		SetBody(&body).
		SetResult(&restReply{}).
		Post("/models/{model}:generateContent")
	if err != nil {
		return Reply{}, fmt.Errorf("gemini rest: %w", err)
	}

	c.logger.Infow("Gemini REST request completed", "status", resp.StatusCode(), "took", time.Since(started).String())

	if resp.IsError() {
		b := strings.TrimSpace(resp.String())
		if b == "" {
			b = resp.Status()
		}
		if len(b) > 4096 {
			b = b[:4096]
		}
		return Reply{}, fmt.Errorf("gemini rest error: status=%d, body=%s", resp.StatusCode(), b)
	}

	rr, ok := resp.Result().(*restReply)
	if !ok || rr == nil {
		return Reply{}, errors.New("gemini rest: unexpected response body")
	}

	var reply Reply
	for _, cand := range rr.Candidates {
		if cand.Content == nil {
			continue
		}
		reply.Candidates = append(reply.Candidates, Candidate{Parts: cand.Content.Parts})
	}
	return reply, nil
}
