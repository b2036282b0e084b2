package importer

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/polynews/newsdesk/internal/cache"
	"github.com/polynews/newsdesk/internal/config"
	"github.com/polynews/newsdesk/internal/media"
	"github.com/polynews/newsdesk/internal/models"
	"github.com/polynews/newsdesk/internal/storage"
)

// writeZip builds a test archive with the given entries.
func writeZip(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := entry.Write(content); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish archive: %v", err)
	}
}

func newTestImporter(t *testing.T) (*Importer, *storage.PostStore, string) {
	t.Helper()

	store, err := storage.NewPostStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create post store: %v", err)
	}

	mediaDir := t.TempDir()
	blobs, err := storage.NewLocalBlobStore(mediaDir, "/media")
	if err != nil {
		t.Fatalf("failed to create blob store: %v", err)
	}

	cfg := &config.Config{
		Timezone:   "UTC",
		ScratchDir: t.TempDir(),
		ImportTTL:  time.Hour,
	}

	imp, err := New(store, media.NewBinder(blobs), cache.NewMockImportCache(), cfg)
	if err != nil {
		t.Fatalf("failed to create importer: %v", err)
	}
	return imp, store, mediaDir
}

func TestImportArchive(t *testing.T) {
	imp, store, mediaDir := newTestImporter(t)

	doc := strings.Join([]string{
		"---",
		"date: 2025-01-10 09:00",
		"---",
		"# [RU]",
		"# Заголовок",
		"Фото ![Фото](photo.jpg) и видео.",
		"[[clip.mp4]]",
		"# [EN]",
		"# Headline",
		"Photo ![Photo](photo.jpg) here.",
	}, "\n")

	archive := filepath.Join(t.TempDir(), "bundle.zip")
	writeZip(t, archive, map[string][]byte{
		"news.md":    []byte(doc),
		"photo.jpg":  []byte("jpeg-bytes"),
		"clip.mp4":   []byte("mp4-bytes"),
		"unused.png": []byte("png-bytes"),
		".DS_Store":  []byte("junk"),
	})

	result, err := imp.ImportArchive(context.Background(), archive, "tester")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(result.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(result.Posts))
	}

	post := result.Posts[0]
	if post.Title(models.LangRU) != "Заголовок" {
		t.Errorf("ru title = %q", post.Title(models.LangRU))
	}
	if post.Title(models.LangEN) != "Headline" {
		t.Errorf("en title = %q", post.Title(models.LangEN))
	}
	if post.Status != models.StatusDraft {
		t.Errorf("status = %q, want draft", post.Status)
	}

	// Only referenced files become attachments.
	if len(post.Media) != 2 {
		t.Fatalf("expected 2 attachments, got %d: %+v", len(post.Media), post.Media)
	}
	for _, m := range post.Media {
		if m.OriginalName == "unused.png" {
			t.Error("unreferenced file must not be attached")
		}
	}

	ruBody := post.Body(models.LangRU)
	photoURL := "/media/news/" + post.ID + "/photo.jpg"
	if !strings.Contains(ruBody, "![Фото]("+photoURL+")") {
		t.Errorf("image reference not rewritten: %q", ruBody)
	}
	if strings.Contains(ruBody, "](photo.jpg)") {
		t.Errorf("literal image reference left behind: %q", ruBody)
	}
	videoTag := `<video controls src="/media/news/` + post.ID + `/clip.mp4" width="100%"></video>`
	if !strings.Contains(ruBody, videoTag) {
		t.Errorf("video reference not rewritten: %q", ruBody)
	}
	if strings.Contains(ruBody, "[[clip.mp4]]") {
		t.Errorf("video placeholder left behind: %q", ruBody)
	}

	// The rewrite applies to every language body.
	if !strings.Contains(post.Body(models.LangEN), photoURL) {
		t.Errorf("en body not rewritten: %q", post.Body(models.LangEN))
	}

	// Used files are persisted, unused ones are not.
	if _, err := os.Stat(filepath.Join(mediaDir, "news", post.ID, "photo.jpg")); err != nil {
		t.Errorf("photo.jpg was not stored: %v", err)
	}
	if _, err := os.Stat(filepath.Join(mediaDir, "news", post.ID, "unused.png")); !os.IsNotExist(err) {
		t.Error("unused.png must not be stored")
	}

	// The persisted post matches what the import returned.
	saved, err := store.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("saved post not found: %v", err)
	}
	if saved.Body(models.LangRU) != ruBody {
		t.Error("saved post body differs from the returned one")
	}
}

func TestImportArchiveMultipleBlocks(t *testing.T) {
	imp, _, _ := newTestImporter(t)

	doc := strings.Join([]string{
		"=== NEWS START ===",
		"[RU]",
		"# Первая",
		"Текст.",
		"=== NEWS START ===",
		"[RU]",
		"# Вторая",
		"Текст.",
	}, "\n")

	archive := filepath.Join(t.TempDir(), "bundle.zip")
	writeZip(t, archive, map[string][]byte{"news.md": []byte(doc)})

	result, err := imp.ImportArchive(context.Background(), archive, "tester")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(result.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(result.Posts))
	}
	if result.Posts[0].Title(models.LangRU) != "Первая" || result.Posts[1].Title(models.LangRU) != "Вторая" {
		t.Errorf("posts out of order: %q, %q",
			result.Posts[0].Title(models.LangRU), result.Posts[1].Title(models.LangRU))
	}
}

func TestImportArchiveDuplicate(t *testing.T) {
	imp, _, _ := newTestImporter(t)

	archive := filepath.Join(t.TempDir(), "bundle.zip")
	writeZip(t, archive, map[string][]byte{"news.md": []byte("[RU]\n# Заголовок\nТекст.")})

	if _, err := imp.ImportArchive(context.Background(), archive, "tester"); err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	_, err := imp.ImportArchive(context.Background(), archive, "tester")
	if !errors.Is(err, ErrAlreadyImported) {
		t.Fatalf("expected ErrAlreadyImported, got %v", err)
	}
}

func TestImportArchiveNotAZip(t *testing.T) {
	imp, _, _ := newTestImporter(t)

	path := filepath.Join(t.TempDir(), "not-a-zip.zip")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := imp.ImportArchive(context.Background(), path, "tester")
	if !errors.Is(err, ErrBadArchive) {
		t.Fatalf("expected ErrBadArchive, got %v", err)
	}
}

func TestImportArchiveWithoutDocument(t *testing.T) {
	imp, _, _ := newTestImporter(t)

	archive := filepath.Join(t.TempDir(), "bundle.zip")
	writeZip(t, archive, map[string][]byte{"photo.jpg": []byte("jpeg-bytes")})

	_, err := imp.ImportArchive(context.Background(), archive, "tester")
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
}

func TestImportArchiveCleansScratch(t *testing.T) {
	imp, _, _ := newTestImporter(t)
	scratch := imp.scratch

	archive := filepath.Join(t.TempDir(), "bundle.zip")
	writeZip(t, archive, map[string][]byte{"news.md": []byte("[RU]\n# Заголовок\nТекст.")})

	if _, err := imp.ImportArchive(context.Background(), archive, "tester"); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatalf("failed to read scratch dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch dir not cleaned up: %d entries left", len(entries))
	}
}
