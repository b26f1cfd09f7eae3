package gemini_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docmap/internal/assist/gemini"
	"docmap/internal/config"
	"docmap/internal/domain"
)

var templates = []domain.Template{
	{ID: "t-1", Name: "Standard Invoice"},
	{ID: "t-2", Name: "Purchase Order"},
}

func TestSearcher_Search(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "{\"suggestions\": [\"Purchase Order\", \"Standard Invoice\"]}"}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer srv.Close()

	s, err := gemini.NewSearcherWithEndpoint(context.Background(),
		&config.AssistConfig{APIKey: "test-key", Model: "gemini-test"}, zap.NewNop(), srv.URL+"/")
	require.NoError(t, err)

	names, err := s.Search(context.Background(), "a purchase order", templates)
	require.NoError(t, err)

	assert.Equal(t, []string{"Purchase Order", "Standard Invoice"}, names)
	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-test:generateContent"), gotPath)
}

func TestSearcher_MalformedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"role": "model", "parts": [{"text": "sorry"}]}}]}`))
	}))
	defer srv.Close()

	s, err := gemini.NewSearcherWithEndpoint(context.Background(),
		&config.AssistConfig{APIKey: "test-key"}, zap.NewNop(), srv.URL+"/")
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "anything", templates)
	assert.Error(t, err)
}

func TestNewSearcher_RequiresAPIKey(t *testing.T) {
	_, err := gemini.NewSearcher(context.Background(), &config.AssistConfig{}, zap.NewNop())
	assert.Error(t, err)
}
