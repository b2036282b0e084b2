package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/polynews/newsdesk/internal/models"
)

// ErrPostNotFound is returned when no stored post matches the requested ID.
var ErrPostNotFound = errors.New("news post not found")

// PostStore keeps news posts as one JSON document per post under basePath.
type PostStore struct {
	basePath string
	mu       sync.RWMutex
}

func NewPostStore(basePath string) (*PostStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create post storage directory: %w", err)
	}

	return &PostStore{
		basePath: basePath,
	}, nil
}

func (s *PostStore) postPath(id string) string {
	return filepath.Join(s.basePath, id+".json")
}

// Save writes the post to disk, creating or overwriting its document.
func (s *PostStore) Save(ctx context.Context, post *models.NewsPost) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal news post: %w", err)
	}

	if err := os.WriteFile(s.postPath(post.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write news post: %w", err)
	}

	return nil
}

// Get retrieves a news post by its ID.
func (s *PostStore) Get(ctx context.Context, id string) (*models.NewsPost, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.postPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPostNotFound, id)
		}
		return nil, fmt.Errorf("failed to read news post %s: %w", id, err)
	}

	var post models.NewsPost
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal news post %s: %w", id, err)
	}

	return &post, nil
}

// List retrieves a page of news posts, newest first. The filter may be nil.
func (s *PostStore) List(ctx context.Context, page, pageSize int, filter func(*models.NewsPost) bool) ([]*models.NewsPost, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var posts []*models.NewsPost
	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}

		var post models.NewsPost
		if err := json.Unmarshal(data, &post); err != nil {
			return fmt.Errorf("failed to unmarshal news post %s: %w", path, err)
		}

		if filter == nil || filter(&post) {
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking the path: %w", err)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	start := (page - 1) * pageSize
	if start >= len(posts) {
		return []*models.NewsPost{}, nil
	}

	end := start + pageSize
	if end > len(posts) {
		end = len(posts)
	}

	return posts[start:end], nil
}

// ListByStatus retrieves every post in the given lifecycle status, newest first.
func (s *PostStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.NewsPost, error) {
	return s.List(ctx, 1, 1<<30, func(p *models.NewsPost) bool {
		return p.Status == status
	})
}

// Delete deletes a news post by its ID.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.postPath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrPostNotFound, id)
		}
		return fmt.Errorf("failed to delete news post: %w", err)
	}

	return nil
}
