package ai

import (
	"BackgroundRemover/internal/config"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
)

// OpenAIClient удаляет фон через Images Edit API: картинка + промпт, на выходе PNG с прозрачным фоном.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.SugaredLogger
}

func NewOpenAIClient(client *openai.Client, cfg config.OpenAIConfig, logger *zap.SugaredLogger) *OpenAIClient {
	model := cfg.Model
	if model == "" {
		model = string(openai.ImageModelGPTImage1)
	}
	return &OpenAIClient{client: client, model: model, logger: logger}
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (Reply, error) {
	if c.client == nil {
		return Reply{}, errors.New("nil openai client")
	}

	var (
		img    *InlineData
		prompt []string
	)
	for _, p := range req.Parts {
		if p.InlineData != nil && img == nil {
			img = p.InlineData
			continue
		}
		if t := strings.TrimSpace(p.Text); t != "" {
			prompt = append(prompt, t)
		}
	}
	if img == nil {
		return Reply{}, errors.New("openai: request has no image part")
	}
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return Reply{}, fmt.Errorf("openai: decode inline data: %w", err)
	}

	params := openai.ImageEditParams{
		Image: openai.ImageEditParamsImageUnion{
			OfFile: openai.File(bytes.NewReader(data), "source"+extensionFor(img.MimeType), img.MimeType),
		},
		Prompt:       strings.Join(prompt, "\n"),
		Model:        openai.ImageModel(c.model),
		Background:   openai.ImageEditParamsBackgroundTransparent,
		OutputFormat: openai.ImageEditParamsOutputFormatPNG,
	}

	start := time.Now()
	c.logger.Infow("Запрос в OpenAI...", "model", c.model)
	resp, err := c.client.Images.Edit(ctx, params)
	dur := time.Since(start)
	if err != nil {
		c.logger.Errorw("Ошибка ответа OpenAI", "duration", dur.String(), "error", err)
		return Reply{}, fmt.Errorf("openai: images edit: %w", err)
	}
	c.logger.Infow("Ответ OpenAI получен", "duration", dur.String())

	var reply Reply
	if resp == nil || len(resp.Data) == 0 {
		return reply, nil
	}
	cand := Candidate{}
	for _, d := range resp.Data {
		if d.RevisedPrompt != "" {
			cand.Parts = append(cand.Parts, TextPart(d.RevisedPrompt))
		}
		if d.B64JSON != "" {
			cand.Parts = append(cand.Parts, InlinePart("image/png", d.B64JSON))
		}
	}
	reply.Candidates = append(reply.Candidates, cand)
	return reply, nil
}

func extensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
