package assist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"docmap/internal/config"
	"docmap/internal/port"
)

// SearcherFactory creates a TemplateSearcher from the assist config.
type SearcherFactory func(ctx context.Context, cfg *config.AssistConfig, logger *zap.Logger) (port.TemplateSearcher, error)

// registry of search providers, populated via RegisterSearcher.
var searchers = map[string]SearcherFactory{
	"heuristic": func(context.Context, *config.AssistConfig, *zap.Logger) (port.TemplateSearcher, error) {
		return KeywordSearcher{}, nil
	},
}

// RegisterSearcher registers a search provider factory by name.
func RegisterSearcher(name string, factory SearcherFactory) {
	searchers[name] = factory
}

// NewSearcher creates the configured searcher. AI providers are wrapped in a
// FallbackSearcher; the heuristic searcher never fails and is returned as is.
func NewSearcher(ctx context.Context, cfg *config.AssistConfig, logger *zap.Logger) (port.TemplateSearcher, error) {
	factory, ok := searchers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown assist provider: %s", cfg.Provider)
	}
	s, err := factory(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating %s searcher: %w", cfg.Provider, err)
	}
	if _, heuristic := s.(KeywordSearcher); heuristic {
		return s, nil
	}
	return NewFallbackSearcher(s, logger), nil
}
