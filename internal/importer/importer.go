package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/polynews/newsdesk/internal/cache"
	"github.com/polynews/newsdesk/internal/config"
	"github.com/polynews/newsdesk/internal/logger"
	"github.com/polynews/newsdesk/internal/media"
	"github.com/polynews/newsdesk/internal/models"
	"github.com/polynews/newsdesk/internal/storage"
	"github.com/polynews/newsdesk/internal/utils"
)

// ErrAlreadyImported means this exact archive content was imported before.
var ErrAlreadyImported = errors.New("archive was already imported")

// Importer runs the whole archive-to-draft pipeline: extract, decode, split,
// parse, assemble, bind media, persist.
type Importer struct {
	store     *storage.PostStore
	binder    *media.Binder
	imports   cache.ImportCache // optional, nil disables duplicate detection
	assembler *Assembler
	scratch   string
	importTTL time.Duration
}

func New(store *storage.PostStore, binder *media.Binder, imports cache.ImportCache, cfg *config.Config) (*Importer, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return &Importer{
		store:     store,
		binder:    binder,
		imports:   imports,
		assembler: NewAssembler(loc),
		scratch:   cfg.ScratchDir,
		importTTL: cfg.ImportTTL,
	}, nil
}

// Result is what one archive import produced.
type Result struct {
	Posts    []*models.NewsPost `json:"posts"`
	Warnings []Warning          `json:"warnings"`
}

// ImportArchive ingests one ZIP bundle and persists a draft post per news
// block. The import is synchronous; the scratch directory is exclusively
// owned by this call and removed on every path out of it.
func (im *Importer) ImportArchive(ctx context.Context, archivePath, author string) (*Result, error) {
	log := logger.Get()
	start := time.Now()

	var archiveHash string
	if im.imports != nil {
		hash, err := utils.HashFile(archivePath)
		if err != nil {
			return nil, fmt.Errorf("failed to hash archive: %w", err)
		}
		archiveHash = hash

		imported, err := im.imports.IsImported(ctx, hash)
		if err != nil {
			log.Warn().Err(err).Msg("Import cache unavailable, skipping duplicate check")
		} else if imported {
			return nil, ErrAlreadyImported
		}
	}

	// One scratch directory per import; concurrent imports never collide.
	scratch := filepath.Join(im.scratch, "import-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := extractArchive(archivePath, scratch); err != nil {
		return nil, err
	}

	docPath, candidates, err := classifyFiles(scratch)
	if err != nil {
		return nil, err
	}

	content, err := decodeDocument(docPath)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, blockText := range splitBlocks(content) {
		if blockText == "" {
			continue
		}

		block, warns := parseBlock(blockText)
		result.Warnings = append(result.Warnings, warns...)

		post, warns := im.assembler.Assemble(block, author)
		result.Warnings = append(result.Warnings, warns...)

		if err := im.store.Save(ctx, post); err != nil {
			return nil, err
		}
		if err := im.binder.Bind(ctx, post, candidates); err != nil {
			return nil, fmt.Errorf("failed to bind media for post %s: %w", post.ID, err)
		}
		if err := im.store.Save(ctx, post); err != nil {
			return nil, err
		}

		result.Posts = append(result.Posts, post)
	}

	if im.imports != nil && archiveHash != "" {
		if err := im.imports.MarkImported(ctx, archiveHash, im.importTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to mark archive as imported")
		}
	}

	log.Info().
		Str("archive", filepath.Base(archivePath)).
		Int("posts", len(result.Posts)).
		Int("warnings", len(result.Warnings)).
		Dur("duration", time.Since(start)).
		Msg("Imported news archive")

	return result, nil
}
