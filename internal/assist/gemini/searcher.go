// Package gemini implements template search with Google's Gemini models.
package gemini

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"docmap/internal/assist"
	"docmap/internal/config"
	"docmap/internal/domain"
	"docmap/internal/port"
)

const defaultModel = "gemini-2.5-flash"

// Searcher implements port.TemplateSearcher using the Gemini API with a JSON
// response schema.
type Searcher struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

var _ port.TemplateSearcher = (*Searcher)(nil)

// NewSearcher creates a Gemini-backed searcher.
func NewSearcher(ctx context.Context, cfg *config.AssistConfig, logger *zap.Logger) (port.TemplateSearcher, error) {
	return newSearcher(ctx, cfg, logger, "")
}

// NewSearcherWithEndpoint creates a searcher pointing at a custom API endpoint (for testing).
func NewSearcherWithEndpoint(ctx context.Context, cfg *config.AssistConfig, logger *zap.Logger, endpoint string) (port.TemplateSearcher, error) {
	return newSearcher(ctx, cfg, logger, endpoint)
}

func newSearcher(ctx context.Context, cfg *config.AssistConfig, logger *zap.Logger, endpoint string) (port.TemplateSearcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	clientConfig := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	}
	if endpoint != "" {
		clientConfig.HTTPOptions.BaseURL = endpoint
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Searcher{client: client, model: model, timeout: timeout, logger: logger.Named("gemini")}, nil
}

// responseSchema constrains the model output to {"suggestions": [string]}.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A suggested template name.",
			},
		},
	},
}

// Search asks the model for the templates most relevant to description.
func (s *Searcher) Search(ctx context.Context, description string, templates []domain.Template) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(assist.SearchPrompt(description, templates)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		})
	if err != nil {
		return nil, fmt.Errorf("calling gemini: %w", err)
	}

	names, err := assist.DecodeSuggestions(resp.Text())
	if err != nil {
		return nil, err
	}
	s.logger.Debug("template search completed",
		zap.String("model", s.model),
		zap.Int("suggestions", len(names)),
		zap.Duration("elapsed", time.Since(start)))
	return names, nil
}
