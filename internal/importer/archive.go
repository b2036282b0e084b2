package importer

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrBadArchive means the uploaded file is not a readable ZIP archive.
	ErrBadArchive = errors.New("archive is malformed or unreadable")
	// ErrNoDocument means the archive contains no .md document to import.
	ErrNoDocument = errors.New("no .md file found in the archive")
)

// extractArchive unpacks the ZIP at archivePath into destDir, which must be
// exclusively owned by the caller.
func extractArchive(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if err := extractEntry(entry, destDir); err != nil {
			return fmt.Errorf("%w: %v", ErrBadArchive, err)
		}
	}

	return nil
}

func extractEntry(entry *zip.File, destDir string) error {
	dest := filepath.Join(destDir, filepath.FromSlash(entry.Name))

	// Reject entries that escape the scratch directory.
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal entry path %q", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// classifyFiles walks the extracted tree. The first .md file found becomes
// the document; every other non-hidden, non-system file is a media candidate
// keyed by base filename. When two candidates share a basename in different
// subdirectories, the later walk entry silently wins.
func classifyFiles(root string) (string, map[string]string, error) {
	var docPath string
	candidates := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		switch {
		case strings.HasSuffix(name, ".md") && docPath == "":
			docPath = path
		case strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".DS_Store"):
			// System artifacts are never media.
		default:
			candidates[name] = path
		}
		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to scan extracted archive: %w", err)
	}

	if docPath == "" {
		return "", nil, ErrNoDocument
	}

	return docPath, candidates, nil
}
