package importer

import (
	"testing"

	"github.com/polynews/newsdesk/internal/models"
)

func TestParseBlockFencedMetadata(t *testing.T) {
	content := "---\ndate: 2025-01-10 09:00\n---\n# [RU]\n# Заголовок\nТекст.\n"

	block, warnings := parseBlock(content)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	date, ok := block.MetaValue("date")
	if !ok || date != "2025-01-10 09:00" {
		t.Errorf("MetaValue(date) = (%q, %v), want (2025-01-10 09:00, true)", date, ok)
	}

	if len(block.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(block.Sections))
	}
	section := block.Sections[0]
	if section.Lang != models.LangRU {
		t.Errorf("section language = %q, want ru", section.Lang)
	}
	if section.Text != "# Заголовок\nТекст." {
		t.Errorf("section text = %q", section.Text)
	}
}

func TestParseBlockUnfencedMetadata(t *testing.T) {
	content := "date: 2025-01-10 09:00\nauthor: иван\n\n[RU]\nТекст.\n"

	block, _ := parseBlock(content)
	if date, _ := block.MetaValue("date"); date != "2025-01-10 09:00" {
		t.Errorf("date = %q", date)
	}
	if author, _ := block.MetaValue("author"); author != "иван" {
		t.Errorf("author = %q", author)
	}
	if len(block.Sections) != 1 || block.Sections[0].Text != "Текст." {
		t.Errorf("unexpected sections: %+v", block.Sections)
	}
}

func TestParseBlockUnterminatedFence(t *testing.T) {
	content := "---\ndate: 2025-01-10 09:00\n[RU]\nТекст.\n"

	block, _ := parseBlock(content)
	if len(block.Meta) != 0 {
		t.Errorf("unterminated fence must yield no metadata, got %+v", block.Meta)
	}
	// The whole block, fence line included, is treated as body.
	if len(block.Sections) != 1 || block.Sections[0].Text != "Текст." {
		t.Errorf("unexpected sections: %+v", block.Sections)
	}
}

func TestParseBlockMalformedMetaLine(t *testing.T) {
	content := "---\ndate: 2025-01-10 09:00\nthis line has no colon\n---\n[RU]\nТекст.\n"

	block, warnings := parseBlock(content)
	if len(block.Meta) != 1 {
		t.Errorf("expected only the date field, got %+v", block.Meta)
	}
	if len(warnings) != 1 || warnings[0].Code != WarnMetaLineIgnored {
		t.Errorf("expected one meta_line_ignored warning, got %v", warnings)
	}
}

func TestParseBlockDiscardsLeadingContent(t *testing.T) {
	content := "stray line before any tag\n[RU]\nТекст.\n"

	// The stray line contains no colon metadata heuristic match, so it lands
	// in the body region and is dropped with a warning.
	block, warnings := parseBlock(content)
	if len(block.Sections) != 1 || block.Sections[0].Text != "Текст." {
		t.Fatalf("unexpected sections: %+v", block.Sections)
	}

	found := false
	for _, w := range warnings {
		if w.Code == WarnLeadingDiscarded {
			found = true
		}
	}
	if !found {
		t.Errorf("expected leading_content_discarded warning, got %v", warnings)
	}
}

func TestParseBlockMultipleLanguages(t *testing.T) {
	content := "[RU]\nРусский текст.\n[EN]\nEnglish text.\n[DE]\nDeutscher Text.\n"

	block, _ := parseBlock(content)
	if len(block.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(block.Sections))
	}

	want := map[models.Language]string{
		models.LangRU: "Русский текст.",
		models.LangEN: "English text.",
		models.LangDE: "Deutscher Text.",
	}
	for _, s := range block.Sections {
		if want[s.Lang] != s.Text {
			t.Errorf("section %s = %q, want %q", s.Lang, s.Text, want[s.Lang])
		}
	}
}

func TestParseBlockUnknownTagStaysInBody(t *testing.T) {
	content := "[RU]\nТекст.\n[FR]\nTexte français.\n"

	block, _ := parseBlock(content)
	if len(block.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(block.Sections))
	}
	text := block.Sections[0].Text
	if text != "Текст.\n[FR]\nTexte français." {
		t.Errorf("unknown tag must remain in the Russian body, got %q", text)
	}
}

func TestParseBlockTagOnHeadingLine(t *testing.T) {
	content := "# [EN]\nEnglish text.\n"

	block, _ := parseBlock(content)
	if len(block.Sections) != 1 || block.Sections[0].Lang != models.LangEN {
		t.Fatalf("heading-style tag line must open a section: %+v", block.Sections)
	}
	if block.Sections[0].Text != "English text." {
		t.Errorf("the tag line itself must not appear in the section: %q", block.Sections[0].Text)
	}
}
