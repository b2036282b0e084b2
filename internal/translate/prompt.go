package translate

import (
	"fmt"
	"strings"

	"github.com/polynews/newsdesk/internal/models"
)

const bulkSystemPrompt = "You are a professional translator. Output JSON only."

const singleSystemPrompt = "You are a professional translator. Translate accurately while preserving all formatting."

// buildBulkPrompt asks for every target language in one request, keyed by
// language code so the response maps straight onto the post fields.
func buildBulkPrompt(title, body string, source models.Language, targets []models.Language) string {
	targetLines := make([]string, 0, len(targets))
	for _, t := range targets {
		targetLines = append(targetLines, fmt.Sprintf("- %q: %s", string(t), t.Name()))
	}

	return fmt.Sprintf(`Translate the following NEWS fields from %s to the target languages.
Preserve all HTML/Markdown formatting, links, and structure.

Return STRICTLY JSON only, no comments, no markdown fences.

Target languages:
%s

JSON format:
{
  "translations": {
    "en": {"title": "...", "body": "..."},
    "de": {"title": "...", "body": "..."}
  }
}

News title:
%s

News body:
%s`, source.Name(), strings.Join(targetLines, "\n"), title, body)
}

func buildSinglePrompt(text string, source, target models.Language) string {
	return fmt.Sprintf(`Translate the following text from %s to %s.
Preserve all HTML/Markdown formatting, links, and structure.
Return only the translated text without any explanations or additional comments.

Text to translate:
%s`, source.Name(), target.Name(), text)
}
