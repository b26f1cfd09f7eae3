package assist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docmap/internal/assist"
	"docmap/internal/config"
	"docmap/mocks"
)

func TestSearchPrompt_ListsTemplateNames(t *testing.T) {
	prompt := assist.SearchPrompt("monthly freight bill", templates)
	assert.Contains(t, prompt, "List: [Purchase Order, Standard Invoice, ACME Bill of Lading]")
	assert.Contains(t, prompt, `"monthly freight bill"`)
	assert.Contains(t, prompt, `"suggestions"`)
}

func TestDecodeSuggestions(t *testing.T) {
	names, err := assist.DecodeSuggestions(" {\"suggestions\": [\"Standard Invoice\"]}\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"Standard Invoice"}, names)

	names, err = assist.DecodeSuggestions(`{"other": 1}`)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = assist.DecodeSuggestions("not json")
	assert.Error(t, err)
}

func TestFallbackSearcher_ProviderError(t *testing.T) {
	primary := new(mocks.MockTemplateSearcher)
	primary.On("Search", mock.Anything, "invoice", templates).Return(nil, errors.New("quota exceeded"))

	s := assist.NewFallbackSearcher(primary, zap.NewNop())
	names, err := s.Search(context.Background(), "invoice", templates)

	require.NoError(t, err)
	assert.Equal(t, []string{"Purchase Order", "Standard Invoice"}, names)
	primary.AssertExpectations(t)
}

func TestFallbackSearcher_TruncatesToThree(t *testing.T) {
	primary := new(mocks.MockTemplateSearcher)
	primary.On("Search", mock.Anything, "x", templates).Return([]string{"a", "b", "c", "d"}, nil)

	s := assist.NewFallbackSearcher(primary, zap.NewNop())
	names, err := s.Search(context.Background(), "x", templates)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestFallbackSearcher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := new(mocks.MockTemplateSearcher)
	primary.On("Search", mock.Anything, "x", templates).Return(nil, context.Canceled)

	s := assist.NewFallbackSearcher(primary, zap.NewNop())
	_, err := s.Search(ctx, "x", templates)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSearcher_Heuristic(t *testing.T) {
	s, err := assist.NewSearcher(context.Background(), &config.AssistConfig{Provider: "heuristic"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, assist.KeywordSearcher{}, s)
}

func TestNewSearcher_UnknownProvider(t *testing.T) {
	_, err := assist.NewSearcher(context.Background(), &config.AssistConfig{Provider: "nope"}, zap.NewNop())
	assert.Error(t, err)
}
