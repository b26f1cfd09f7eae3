package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docmap/internal/domain"
	"docmap/internal/port"
)

// MaxSuggestions caps the number of template names returned by a search.
const MaxSuggestions = 3

// SystemPrompt is sent to chat-style providers ahead of the search prompt.
const SystemPrompt = "You are a helpful assistant that provides responses in JSON format."

// SearchPrompt builds the template search prompt for an AI provider.
func SearchPrompt(description string, templates []domain.Template) string {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	return fmt.Sprintf(
		"From the following list of templates, which are most relevant to the document description provided? "+
			"Respond with a JSON object containing a single key \"suggestions\" which is an array of up to %d template names. "+
			"List: [%s]. Description: %q.",
		MaxSuggestions, strings.Join(names, ", "), description)
}

// DecodeSuggestions reads a {"suggestions": [...]} payload. A payload without
// a suggestions array yields an empty result.
func DecodeSuggestions(text string) ([]string, error) {
	var payload struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	if payload.Suggestions == nil {
		return []string{}, nil
	}
	return payload.Suggestions, nil
}

// FallbackSearcher wraps a provider-backed searcher. When the provider fails,
// the first two template names are returned instead of an error.
type FallbackSearcher struct {
	primary port.TemplateSearcher
	logger  *zap.Logger
}

var _ port.TemplateSearcher = (*FallbackSearcher)(nil)

// NewFallbackSearcher creates a FallbackSearcher around primary.
func NewFallbackSearcher(primary port.TemplateSearcher, logger *zap.Logger) *FallbackSearcher {
	return &FallbackSearcher{primary: primary, logger: logger.Named("assist")}
}

// Search delegates to the wrapped searcher, truncating to MaxSuggestions.
func (f *FallbackSearcher) Search(ctx context.Context, description string, templates []domain.Template) ([]string, error) {
	names, err := f.primary.Search(ctx, description, templates)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Warn("template search failed, using fallback", zap.Error(err))
		return FirstNames(templates, 2), nil
	}
	if len(names) > MaxSuggestions {
		names = names[:MaxSuggestions]
	}
	return names, nil
}
