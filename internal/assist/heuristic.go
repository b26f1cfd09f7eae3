// Package assist holds the helpers that pre-fill wizard choices: partner
// identification, template suggestion and free-text template search.
package assist

import (
	"context"
	"strings"
	"unicode"

	"docmap/internal/domain"
	"docmap/internal/port"
)

// NameMatcher identifies a partner when one of the known partner names
// appears in the document's file name or hint text.
type NameMatcher struct {
	partners []domain.Partner
}

var _ port.PartnerIdentifier = (*NameMatcher)(nil)

// NewNameMatcher creates a NameMatcher over the known partners.
func NewNameMatcher(partners []domain.Partner) *NameMatcher {
	return &NameMatcher{partners: append([]domain.Partner{}, partners...)}
}

// Identify returns the first partner whose full name, or leading name word,
// occurs in the document text. It returns nil when nothing matches.
func (m *NameMatcher) Identify(ctx context.Context, doc domain.SourceDocument) (*domain.Partner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := normalize(doc.FileName + " " + doc.Hint)
	if text == "" {
		return nil, nil
	}
	for _, p := range m.partners {
		if name := normalize(p.Name); name != "" && strings.Contains(text, name) {
			found := p
			return &found, nil
		}
	}
	for _, p := range m.partners {
		if word := leadingWord(p.Name); len(word) >= 4 && strings.Contains(text, word) {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

// normalize lowercases s and drops everything but letters and digits.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func leadingWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return normalize(fields[0])
}

// Suggester prefers templates whose name mentions an invoice or a standard
// layout and otherwise suggests the first template offered.
type Suggester struct{}

var _ port.TemplateSuggester = Suggester{}

// Suggest returns the id of the suggested template, or "" for no templates.
func (Suggester) Suggest(ctx context.Context, _ domain.Partner, templates []domain.Template) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(templates) == 0 {
		return "", nil
	}
	for _, t := range templates {
		name := strings.ToLower(t.Name)
		if strings.Contains(name, "invoice") || strings.Contains(name, "standard") {
			return t.ID, nil
		}
	}
	return templates[0].ID, nil
}

// KeywordSearcher ranks templates by matching description words against
// template names. Used when no AI provider is configured.
type KeywordSearcher struct{}

var _ port.TemplateSearcher = KeywordSearcher{}

// Search returns every template whose name contains one of the description's
// words, or the first two templates when none match.
func (KeywordSearcher) Search(ctx context.Context, description string, templates []domain.Template) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keywords := strings.Fields(strings.ToLower(description))
	matched := []string{}
	for _, t := range templates {
		name := strings.ToLower(t.Name)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				matched = append(matched, t.Name)
				break
			}
		}
	}
	if len(matched) == 0 {
		return FirstNames(templates, 2), nil
	}
	return matched, nil
}

// FirstNames returns the names of up to n leading templates.
func FirstNames(templates []domain.Template, n int) []string {
	if n > len(templates) {
		n = len(templates)
	}
	out := make([]string, 0, n)
	for _, t := range templates[:n] {
		out = append(out, t.Name)
	}
	return out
}
