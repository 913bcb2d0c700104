package ai

import (
	"BackgroundRemover/internal/config"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient отправляет запрос в Gemini через официальный SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.SugaredLogger
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger *zap.SugaredLogger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model, logger: logger}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (Reply, error) {
	parts, err := toGenAIParts(req)
	if err != nil {
		return Reply{}, err
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	genCfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage), string(genai.ModalityText)},
	}

	start := time.Now()
	c.logger.Infow("Запрос в Gemini...", "model", c.model)
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	dur := time.Since(start)
	if err != nil {
		c.logger.Errorw("Ошибка ответа Gemini", "duration", dur.String(), "error", err)
		return Reply{}, fmt.Errorf("gemini: generate content: %w", err)
	}
	c.logger.Infow("Ответ Gemini получен", "duration", dur.String())

	return fromGenAIResponse(resp), nil
}

func toGenAIParts(req Request) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.InlineData != nil {
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("gemini: decode inline data: %w", err)
			}
			parts = append(parts, genai.NewPartFromBytes(data, p.InlineData.MimeType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}
	return parts, nil
}

// fromGenAIResponse переводит ответ SDK в нейтральный вид. SDK уже декодировал байты,
// поэтому кодируем обратно в base64, как они приходят по сети.
func fromGenAIResponse(resp *genai.GenerateContentResponse) Reply {
	var reply Reply
	if resp == nil {
		return reply
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		out := Candidate{Parts: make([]Part, 0, len(cand.Content.Parts))}
		for _, p := range cand.Content.Parts {
			if p == nil {
				continue
			}
			switch {
			case p.InlineData != nil:
				out.Parts = append(out.Parts, InlinePart(p.InlineData.MIMEType, base64.StdEncoding.EncodeToString(p.InlineData.Data)))
			case p.Text != "":
				out.Parts = append(out.Parts, TextPart(p.Text))
			}
		}
		reply.Candidates = append(reply.Candidates, out)
	}
	return reply
}
