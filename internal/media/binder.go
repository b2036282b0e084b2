package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polynews/newsdesk/internal/logger"
	"github.com/polynews/newsdesk/internal/models"
	"github.com/polynews/newsdesk/internal/storage"
)

// Binder decides which candidate files a post actually references, persists
// them through the blob store, and rewrites in-body references to the stored
// URLs. Files never referenced from any language body are not persisted.
type Binder struct {
	blobs storage.BlobStore
}

func NewBinder(blobs storage.BlobStore) *Binder {
	return &Binder{blobs: blobs}
}

// Bind uploads every used candidate and rewrites references in all language
// bodies. Rewrites apply to every language even when a file is referenced in
// only one, since the usage scan is global to the post.
func (b *Binder) Bind(ctx context.Context, post *models.NewsPost, candidates map[string]string) error {
	used := usedFiles(post, candidates)

	urls := make(map[string]string, len(used))
	for _, name := range used {
		f, err := os.Open(candidates[name])
		if err != nil {
			return fmt.Errorf("failed to open media file %s: %w", name, err)
		}

		key := "news/" + post.ID + "/" + name
		url, err := b.blobs.Put(ctx, key, f, contentTypeFor(name))
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to store media file %s: %w", name, err)
		}

		post.Media = append(post.Media, models.MediaAttachment{
			ID:           uuid.NewString(),
			PostID:       post.ID,
			OriginalName: name,
			Type:         models.MediaTypeForFile(name),
			URL:          url,
			CreatedAt:    time.Now(),
		})
		urls[name] = url

		logger.Get().Debug().
			Str("post_id", post.ID).
			Str("file", name).
			Str("url", url).
			Msg("Stored media attachment")
	}

	for _, lang := range models.Languages {
		body := post.Body(lang)
		if body == "" {
			continue
		}
		for _, name := range used {
			body = rewriteReferences(body, name, urls[name])
		}
		post.SetBody(lang, body)
	}

	return nil
}

// usedFiles returns candidate filenames whose literal text appears in any
// populated language body, sorted for deterministic processing.
func usedFiles(post *models.NewsPost, candidates map[string]string) []string {
	var used []string
	for name := range candidates {
		for _, lang := range models.Languages {
			if body := post.Body(lang); body != "" && strings.Contains(body, name) {
				used = append(used, name)
				break
			}
		}
	}
	sort.Strings(used)
	return used
}

// rewriteReferences substitutes markdown image links and bracketed video
// references to name with the stored URL. The [[name]] syntax always yields
// a video element regardless of the file's classified type: that is the
// bundle format's contract, not a type check.
func rewriteReferences(body, name, url string) string {
	imageRe := regexp.MustCompile(`!\[(.*?)\]\(` + regexp.QuoteMeta(name) + `\)`)
	body = imageRe.ReplaceAllString(body, `![${1}](`+url+`)`)

	videoTag := `<video controls src="` + url + `" width="100%"></video>`
	return strings.ReplaceAll(body, "[["+name+"]]", videoTag)
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
