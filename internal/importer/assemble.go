package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polynews/newsdesk/internal/models"
)

// dateLayout is the expected format of the front-matter date field.
const dateLayout = "2006-01-02 15:04"

// untitledPlaceholder stands in when no heading is found near the top of a
// language section.
const untitledPlaceholder = "Untitled"

// noNewsPhrase marks bundles where the discovery step found nothing to
// report; such posts are flagged so the frontend can bulk-delete them.
const noNewsPhrase = "новостей не найдено"

// Assembler turns parsed blocks into draft posts.
type Assembler struct {
	loc *time.Location
	now func() time.Time
}

func NewAssembler(loc *time.Location) *Assembler {
	return &Assembler{loc: loc, now: time.Now}
}

// Assemble builds a draft post from one parsed block. A malformed or absent
// date falls back to the current time; a section without a heading gets a
// placeholder title. Neither ever fails the import.
func (a *Assembler) Assemble(block ParsedBlock, author string) (*models.NewsPost, []Warning) {
	var warnings []Warning

	pubDate := a.now()
	if raw, ok := block.MetaValue("date"); ok {
		if parsed, err := time.ParseInLocation(dateLayout, raw, a.loc); err == nil {
			pubDate = parsed
		} else {
			warnings = append(warnings, warnf(WarnDateDefaulted,
				"could not parse date %q, using current time", raw))
		}
	} else {
		warnings = append(warnings, warnf(WarnDateDefaulted,
			"no date in front matter, using current time"))
	}

	post := &models.NewsPost{
		ID:      uuid.NewString(),
		PubDate: pubDate,
		Author:  author,
		Status:  models.StatusDraft,
	}

	for _, section := range block.Sections {
		title, found := sectionTitle(section.Text)
		if !found {
			warnings = append(warnings, warnf(WarnTitleDefaulted,
				"no heading in %s section, using %q", section.Lang, untitledPlaceholder))
		}
		post.SetTitle(section.Lang, title)
		// The body keeps the heading line. Authors control the rendered
		// markdown, and stripping headings reliably from free-form content
		// is not possible.
		post.SetBody(section.Lang, section.Text)
	}

	post.NoNewsFound = strings.Contains(
		strings.ToLower(post.Body(models.SourceLanguage)), noNewsPhrase)

	return post, warnings
}

// sectionTitle looks for a markdown heading within the first five lines of a
// section and returns its text with the heading marker stripped.
func sectionTitle(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#")), true
		}
	}
	return untitledPlaceholder, false
}
