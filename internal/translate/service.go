package translate

import (
	"context"
	"strings"
	"time"

	"github.com/polynews/newsdesk/internal/logger"
	"github.com/polynews/newsdesk/internal/models"
)

const (
	bulkTemperature   = 0.2
	singleTemperature = 0.3
	bulkMaxTokens     = 4000
	singleMaxTokens   = 2000
)

// Translation is one language's translated title/body pair. Both fields
// empty is the sentinel for "translation attempted but failed".
type Translation struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Usable reports whether both fields came back non-empty.
func (t Translation) Usable() bool {
	return t.Title != "" && t.Body != ""
}

// Config enumerates every translation option the service recognizes.
type Config struct {
	Enabled     bool
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration // one text, one language
	BulkTimeout time.Duration // one request covering all targets
}

// Service translates news posts through an LLM provider. It never fails past
// its own boundary: anything that goes wrong degrades to empty sentinel
// pairs, and the caller decides publish or retry policy.
type Service struct {
	cfg      Config
	provider Provider
}

func New(cfg Config) *Service {
	s := &Service{cfg: cfg}
	switch cfg.Provider {
	case "openai":
		s.provider = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "anthropic", "deepl":
		// Recognized providers without an implementation yet; translation
		// degrades to sentinels until one lands.
		logger.Get().Warn().Str("provider", cfg.Provider).Msg("Translation provider not implemented")
	default:
		logger.Get().Error().Str("provider", cfg.Provider).Msg("Unknown translation provider")
	}
	return s
}

// NewWithProvider builds a service around an explicit provider backend.
func NewWithProvider(cfg Config, provider Provider) *Service {
	return &Service{cfg: cfg, provider: provider}
}

// TranslateNews translates a title/body pair into every target language with
// one bulk request, falling back to sequential per-language requests when
// the bulk attempt yields nothing usable. The returned map always has an
// entry for every requested target; failed languages hold the sentinel pair.
func (s *Service) TranslateNews(ctx context.Context, title, body string, source models.Language, targets []models.Language) map[models.Language]Translation {
	out := make(map[models.Language]Translation, len(targets))
	for _, target := range targets {
		out[target] = Translation{}
	}
	if len(targets) == 0 {
		return out
	}

	if !s.cfg.Enabled || s.cfg.APIKey == "" || s.provider == nil {
		logger.Get().Warn().Msg("Translation is disabled or not configured")
		return out
	}

	if bulk, ok := s.translateBulk(ctx, title, body, source, targets); ok {
		for _, target := range targets {
			if tr, found := bulk[target]; found {
				out[target] = tr
			}
		}
		return out
	}

	// Fallback: one title and one body request per language. Slow, but it
	// keeps a partially working provider useful.
	for _, target := range targets {
		translatedTitle, titleErr := s.translateText(ctx, title, source, target)
		translatedBody, bodyErr := s.translateText(ctx, body, source, target)

		if titleErr != nil || bodyErr != nil || translatedTitle == "" || translatedBody == "" {
			logger.Get().Warn().
				Str("language", string(target)).
				AnErr("title_error", titleErr).
				AnErr("body_error", bodyErr).
				Msg("Failed to translate, leaving empty")
			continue
		}
		out[target] = Translation{Title: translatedTitle, Body: translatedBody}
	}

	return out
}

// translateBulk asks for all target languages in a single request. ok=false
// means the attempt produced nothing usable and the caller should fall back.
func (s *Service) translateBulk(ctx context.Context, title, body string, source models.Language, targets []models.Language) (map[models.Language]Translation, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.BulkTimeout)
	defer cancel()

	raw, err := s.provider.Complete(ctx, bulkSystemPrompt,
		buildBulkPrompt(title, body, source, targets), bulkMaxTokens, bulkTemperature)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Bulk translation request failed")
		return nil, false
	}

	parsed, ok := decodeBulkResponse(raw)
	if !ok {
		logger.Get().Error().Msg("Bulk translation returned no parsable JSON object")
		return nil, false
	}

	out := make(map[models.Language]Translation)
	for _, target := range targets {
		item, found := parsed[string(target)]
		if !found {
			continue
		}
		item.Title = strings.TrimSpace(item.Title)
		item.Body = strings.TrimSpace(item.Body)
		if !item.Usable() {
			continue
		}
		out[target] = item
	}

	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// translateText translates one text with a single request. Translating to
// the source language or translating blank text is the identity.
func (s *Service) translateText(ctx context.Context, text string, source, target models.Language) (string, error) {
	if source == target || strings.TrimSpace(text) == "" {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	return s.provider.Complete(ctx, singleSystemPrompt,
		buildSinglePrompt(text, source, target), singleMaxTokens, singleTemperature)
}
