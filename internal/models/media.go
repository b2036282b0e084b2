package models

import (
	"path/filepath"
	"strings"
	"time"
)

// MediaType classifies an attachment by what the frontend should render.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

var videoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
}

// MediaTypeForFile classifies a filename by extension. Anything that is not a
// known video container counts as an image.
func MediaTypeForFile(name string) MediaType {
	if videoExtensions[strings.ToLower(filepath.Ext(name))] {
		return MediaVideo
	}
	return MediaImage
}

// MediaAttachment is one stored file owned by exactly one news post. Only
// files actually referenced from a post body are ever persisted.
type MediaAttachment struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	OriginalName string    `json:"original_name"`
	Type         MediaType `json:"media_type"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}
