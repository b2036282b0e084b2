package importer

import (
	"testing"
	"time"

	"github.com/polynews/newsdesk/internal/models"
)

func testAssembler(now time.Time) *Assembler {
	a := NewAssembler(time.UTC)
	a.now = func() time.Time { return now }
	return a
}

func TestAssembleFullBlock(t *testing.T) {
	a := testAssembler(time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC))

	block := ParsedBlock{
		Meta: []MetaField{{Key: "date", Value: "2025-01-10 09:00"}},
		Sections: []LanguageSection{
			{Lang: models.LangRU, Text: "# Заголовок\nТекст."},
		},
	}

	post, warnings := a.Assemble(block, "иван")
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if post.ID == "" {
		t.Error("post must get an ID")
	}
	if post.Status != models.StatusDraft {
		t.Errorf("status = %q, want draft", post.Status)
	}
	if post.Author != "иван" {
		t.Errorf("author = %q", post.Author)
	}

	want := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	if !post.PubDate.Equal(want) {
		t.Errorf("pub date = %v, want %v", post.PubDate, want)
	}

	if post.Title(models.LangRU) != "Заголовок" {
		t.Errorf("title = %q", post.Title(models.LangRU))
	}
	// The body keeps the heading line.
	if post.Body(models.LangRU) != "# Заголовок\nТекст." {
		t.Errorf("body = %q", post.Body(models.LangRU))
	}
}

func TestAssembleDefaultsDateToNow(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	a := testAssembler(now)

	cases := []struct {
		name string
		meta []MetaField
	}{
		{"missing date", nil},
		{"malformed date", []MetaField{{Key: "date", Value: "next tuesday"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			post, warnings := a.Assemble(ParsedBlock{Meta: tc.meta}, "admin")
			if !post.PubDate.Equal(now) {
				t.Errorf("pub date = %v, want %v", post.PubDate, now)
			}

			found := false
			for _, w := range warnings {
				if w.Code == WarnDateDefaulted {
					found = true
				}
			}
			if !found {
				t.Errorf("expected date_defaulted warning, got %v", warnings)
			}
		})
	}
}

func TestAssembleDefaultsTitle(t *testing.T) {
	a := testAssembler(time.Now())

	block := ParsedBlock{
		Sections: []LanguageSection{
			{Lang: models.LangRU, Text: "Текст без заголовка."},
		},
	}

	post, warnings := a.Assemble(block, "admin")
	if post.Title(models.LangRU) != "Untitled" {
		t.Errorf("title = %q, want Untitled", post.Title(models.LangRU))
	}

	found := false
	for _, w := range warnings {
		if w.Code == WarnTitleDefaulted {
			found = true
		}
	}
	if !found {
		t.Errorf("expected title_defaulted warning, got %v", warnings)
	}
}

func TestAssembleHeadingBeyondFifthLineIgnored(t *testing.T) {
	a := testAssembler(time.Now())

	text := "one\ntwo\nthree\nfour\nfive\n# Too Late"
	post, _ := a.Assemble(ParsedBlock{
		Sections: []LanguageSection{{Lang: models.LangEN, Text: text}},
	}, "admin")

	if post.Title(models.LangEN) != "Untitled" {
		t.Errorf("heading past line five must not become the title, got %q", post.Title(models.LangEN))
	}
}

func TestAssembleNoNewsFlag(t *testing.T) {
	a := testAssembler(time.Now())

	block := ParsedBlock{
		Sections: []LanguageSection{
			{Lang: models.LangRU, Text: "# Сводка\nЗа сегодня Новостей не найдено."},
		},
	}

	post, _ := a.Assemble(block, "admin")
	if !post.NoNewsFound {
		t.Error("post containing the no-news phrase must be flagged")
	}

	block.Sections[0].Text = "# Сводка\nОбычный текст."
	post, _ = a.Assemble(block, "admin")
	if post.NoNewsFound {
		t.Error("ordinary post must not be flagged")
	}
}
