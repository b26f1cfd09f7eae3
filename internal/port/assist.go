package port

import (
	"context"

	"docmap/internal/domain"
)

// PartnerIdentifier recognizes the trading partner of an uploaded document.
// A nil partner with a nil error means manual entry is required.
type PartnerIdentifier interface {
	Identify(ctx context.Context, doc domain.SourceDocument) (*domain.Partner, error)
}

// TemplateSuggester picks the most likely template for a partner. An empty id
// means no specific suggestion.
type TemplateSuggester interface {
	Suggest(ctx context.Context, partner domain.Partner, templates []domain.Template) (string, error)
}

// TemplateSearcher ranks templates against a free-text document description
// and returns up to three template names.
type TemplateSearcher interface {
	Search(ctx context.Context, description string, templates []domain.Template) ([]string, error)
}
