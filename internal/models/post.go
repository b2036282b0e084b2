package models

import "time"

// Status is the lifecycle state of a news post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
)

// NewsPost represents one news item with independent title/body pairs per
// supported language. A pair may stay empty when translation failed; a post
// with only the source pair filled is still publishable.
type NewsPost struct {
	ID          string              `json:"id"`
	Titles      map[Language]string `json:"titles"`
	Bodies      map[Language]string `json:"bodies"`
	PubDate     time.Time           `json:"pub_date"`
	Author      string              `json:"author,omitempty"`
	Status      Status              `json:"status"`
	NoNewsFound bool                `json:"is_no_news_found"`
	Media       []MediaAttachment   `json:"media,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at,omitempty"`
}

// Title returns the title for lang, or "" when it was never filled.
func (p *NewsPost) Title(lang Language) string {
	return p.Titles[lang]
}

// Body returns the body for lang, or "" when it was never filled.
func (p *NewsPost) Body(lang Language) string {
	return p.Bodies[lang]
}

func (p *NewsPost) SetTitle(lang Language, title string) {
	if p.Titles == nil {
		p.Titles = make(map[Language]string)
	}
	p.Titles[lang] = title
}

func (p *NewsPost) SetBody(lang Language, body string) {
	if p.Bodies == nil {
		p.Bodies = make(map[Language]string)
	}
	p.Bodies[lang] = body
}

// HasSource reports whether the source-language title and body are both
// non-empty. Publishing requires this.
func (p *NewsPost) HasSource() bool {
	return p.Title(SourceLanguage) != "" && p.Body(SourceLanguage) != ""
}

// Visible reports whether the post should be shown to anonymous readers:
// published and not scheduled for the future.
func (p *NewsPost) Visible(now time.Time) bool {
	return p.Status == StatusPublished && !p.PubDate.After(now)
}
