// Package gateway implements template search against an OpenAI-compatible
// AI gateway that routes requests by model name in the URL.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"docmap/internal/assist"
	"docmap/internal/config"
	"docmap/internal/domain"
	"docmap/internal/port"
)

const defaultModel = "gemini-2.5-flash"

// Searcher implements port.TemplateSearcher over a chat completions gateway.
type Searcher struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

var _ port.TemplateSearcher = (*Searcher)(nil)

// BaseURL returns the gateway base URL for a model: {url}/{model}/v1.
func BaseURL(gatewayURL, model string) string {
	return fmt.Sprintf("%s/%s/v1", strings.TrimSuffix(gatewayURL, "/"), model)
}

// NewSearcher creates a gateway-backed searcher.
func NewSearcher(_ context.Context, cfg *config.AssistConfig, logger *zap.Logger) (port.TemplateSearcher, error) {
	if cfg.GatewayURL == "" || cfg.GatewayAPIKey == "" {
		return nil, fmt.Errorf("gateway url and api key are required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.GatewayAPIKey)
	clientConfig.BaseURL = BaseURL(cfg.GatewayURL, model)
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &Searcher{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger.Named("gateway"),
	}, nil
}

// Search asks the gateway model for the templates most relevant to description.
func (s *Searcher) Search(ctx context.Context, description string, templates []domain.Template) ([]string, error) {
	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assist.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: assist.SearchPrompt(description, templates)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("gateway request failed with status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("calling gateway: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("gateway response did not contain the expected content")
	}

	names, err := assist.DecodeSuggestions(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("template search completed",
		zap.String("model", s.model),
		zap.Int("suggestions", len(names)),
		zap.Duration("elapsed", time.Since(start)))
	return names, nil
}
