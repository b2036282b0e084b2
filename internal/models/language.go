package models

import "strings"

// Language is one of the four languages a news post can carry.
type Language string

const (
	LangRU Language = "ru"
	LangEN Language = "en"
	LangDE Language = "de"
	LangPT Language = "pt"
)

// SourceLanguage is the language news arrive in; imports fill only this one,
// the other three are populated by translation at publish time.
const SourceLanguage = LangRU

// Languages lists every supported language in display order.
var Languages = []Language{LangRU, LangEN, LangDE, LangPT}

var languageNames = map[Language]string{
	LangRU: "Russian",
	LangEN: "English",
	LangDE: "German",
	LangPT: "Portuguese",
}

// Name returns the English name of the language, used when talking to the
// translation model.
func (l Language) Name() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}

// Tag returns the inline marker used in import documents, e.g. "[RU]".
func (l Language) Tag() string {
	return "[" + strings.ToUpper(string(l)) + "]"
}

// Valid reports whether l is a supported language code.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// TargetLanguages returns every supported language except source.
func TargetLanguages(source Language) []Language {
	targets := make([]Language, 0, len(Languages)-1)
	for _, l := range Languages {
		if l != source {
			targets = append(targets, l)
		}
	}
	return targets
}

// LanguageForTag maps an inline marker like "[DE]" back to its language.
// Unknown markers are not languages and stay part of the surrounding text.
func LanguageForTag(tag string) (Language, bool) {
	for _, l := range Languages {
		if l.Tag() == tag {
			return l, true
		}
	}
	return "", false
}
