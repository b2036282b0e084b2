package importer

import (
	"strings"

	"github.com/polynews/newsdesk/internal/models"
)

// metaFence delimits a fenced front-matter header.
const metaFence = "---"

// MetaField is one front-matter key/value pair, in document order.
type MetaField struct {
	Key   string
	Value string
}

// LanguageSection is the text that followed one language tag, up to the next
// tag or the end of the block.
type LanguageSection struct {
	Lang models.Language
	Text string
}

// ParsedBlock is the raw parse result for one news block.
type ParsedBlock struct {
	Meta     []MetaField
	Sections []LanguageSection
}

// MetaValue returns the first value recorded for key.
func (b *ParsedBlock) MetaValue(key string) (string, bool) {
	for _, f := range b.Meta {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// parseBlock extracts front matter and per-language sections from one block.
// Malformed input degrades to fewer or emptier sections, never to an error:
// these documents are authored by hand.
func parseBlock(content string) (ParsedBlock, []Warning) {
	var block ParsedBlock
	var warnings []Warning

	lines := strings.Split(content, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return block, warnings
	}

	var metaLines []string
	bodyStart := 0

	first := strings.TrimSpace(lines[0])
	switch {
	case first == metaFence:
		closed := false
		for i, line := range lines[1:] {
			if strings.TrimSpace(line) == metaFence {
				bodyStart = i + 2
				closed = true
				break
			}
			metaLines = append(metaLines, line)
		}
		if !closed {
			// Unterminated fence: no metadata, the whole block is body.
			metaLines = nil
			bodyStart = 0
		}
	case strings.Contains(lines[0], ":") && !strings.HasPrefix(first, "#"):
		// Bare key: value lines without a fence, a common author mistake.
		terminated := false
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") || trimmed == metaFence {
				bodyStart = i
				if trimmed == metaFence {
					bodyStart++ // the stray separator itself is skipped
				}
				terminated = true
				break
			}
			metaLines = append(metaLines, line)
		}
		if !terminated {
			bodyStart = len(lines)
		}
	}

	for _, line := range metaLines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			if strings.TrimSpace(line) != "" {
				warnings = append(warnings, warnf(WarnMetaLineIgnored,
					"ignoring malformed metadata line %q", strings.TrimSpace(line)))
			}
			continue
		}
		block.Meta = append(block.Meta, MetaField{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}

	// A line containing a language tag opens a new section; the tag line is
	// a delimiter, not content. Lines before the first tag are discarded.
	var current models.Language
	var buffer []string
	discarded := false

	flush := func() {
		if current != "" {
			block.Sections = append(block.Sections, LanguageSection{
				Lang: current,
				Text: strings.TrimSpace(strings.Join(buffer, "\n")),
			})
		}
	}

	for _, line := range lines[bodyStart:] {
		if lang, ok := languageTagIn(line); ok {
			flush()
			current = lang
			buffer = nil
			continue
		}
		if current == "" {
			if strings.TrimSpace(line) != "" {
				discarded = true
			}
			continue
		}
		buffer = append(buffer, line)
	}
	flush()

	if discarded {
		warnings = append(warnings, warnf(WarnLeadingDiscarded,
			"content before the first language tag was discarded"))
	}

	return block, warnings
}

// languageTagIn reports which language tag, if any, occurs in the line.
// Matching is case-sensitive and by substring, so "# [RU]" and "[RU]" both
// open a Russian section. Unknown bracketed tokens are not tags.
func languageTagIn(line string) (models.Language, bool) {
	for _, l := range models.Languages {
		if strings.Contains(line, l.Tag()) {
			return l, true
		}
	}
	return "", false
}
