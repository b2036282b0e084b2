package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/polynews/newsdesk/internal/logger"
	"github.com/polynews/newsdesk/internal/models"
	"github.com/polynews/newsdesk/internal/storage"
	"github.com/polynews/newsdesk/internal/translate"
)

var (
	// ErrNotDraft means the post is not in the draft state publishing requires.
	ErrNotDraft = errors.New("news post is not a draft")
	// ErrMissingSource means the post has no Russian title or body.
	ErrMissingSource = errors.New("news post has no Russian title or body")
)

// Publisher translates drafts into every target language and flips them to
// published. Drafts arrive with only the Russian pair filled; the other
// three languages are added here.
type Publisher struct {
	store      *storage.PostStore
	translator *translate.Service
}

func New(store *storage.PostStore, translator *translate.Service) *Publisher {
	return &Publisher{
		store:      store,
		translator: translator,
	}
}

// Publish translates the draft into all target languages and marks it
// published. Per-language translation failures leave those pairs empty and
// the post still publishes; only precondition failures abort, and they
// mutate nothing.
func (p *Publisher) Publish(ctx context.Context, id string) (*models.NewsPost, error) {
	log := logger.Get()

	post, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.Status != models.StatusDraft {
		return nil, fmt.Errorf("%w: %s (status: %s)", ErrNotDraft, post.ID, post.Status)
	}
	if !post.HasSource() {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, post.ID)
	}

	log.Info().
		Str("id", post.ID).
		Str("title", truncate(post.Title(models.SourceLanguage), 50)).
		Msg("Publishing news post")

	targets := models.TargetLanguages(models.SourceLanguage)
	translations := p.translator.TranslateNews(ctx,
		post.Title(models.SourceLanguage),
		post.Body(models.SourceLanguage),
		models.SourceLanguage, targets)

	translated := 0
	for _, lang := range targets {
		tr := translations[lang]
		if !tr.Usable() {
			continue
		}
		post.SetTitle(lang, tr.Title)
		post.SetBody(lang, tr.Body)
		translated++
	}

	post.Status = models.StatusPublished
	if err := p.store.Save(ctx, post); err != nil {
		return nil, err
	}

	log.Info().
		Str("id", post.ID).
		Int("translations", translated).
		Msg("Published news post")

	return post, nil
}

// BatchResult aggregates a batch publish run. ErrorMessages holds every
// failure; display layers decide how many to show.
type BatchResult struct {
	Published     int      `json:"published"`
	Errors        int      `json:"errors"`
	ErrorMessages []string `json:"error_messages"`
}

// PublishBatch publishes each draft in turn. Posts are independent: one
// post's translation or precondition failure never aborts the rest.
func (p *Publisher) PublishBatch(ctx context.Context, ids []string) BatchResult {
	var result BatchResult
	for _, id := range ids {
		if _, err := p.Publish(ctx, id); err != nil {
			result.Errors++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("News %s: %v", id, err))
			logger.Get().Error().Err(err).Str("id", id).Msg("Error publishing news post")
			continue
		}
		result.Published++
	}
	return result
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
