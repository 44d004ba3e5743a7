package entity

import (
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

// ContainsBannedWord reports whether text contains any of words as a
// case-insensitive substring. Empty entries in words are ignored.
func ContainsBannedWord(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// cyrillicTranslit is the Russian and Ukrainian table used for note slugs
// (щ is sch, ю is yu, й is j). Hard and soft signs are dropped.
var cyrillicTranslit = strings.NewReplacer(
	"щ", "sch",
	"ё", "yo", "ж", "zh", "ц", "ts", "ч", "ch", "ш", "sh", "ю", "yu", "я", "ya",
	"а", "a", "б", "b", "в", "v", "г", "g", "д", "d", "е", "e", "з", "z",
	"и", "i", "й", "j", "к", "k", "л", "l", "м", "m", "н", "n", "о", "o",
	"п", "p", "р", "r", "с", "s", "т", "t", "у", "u", "ф", "f", "х", "h",
	"ы", "y", "э", "e", "ъ", "", "ь", "",
	"є", "ye", "ї", "yi", "і", "i", "ґ", "g",
)

// Slugify derives a URL-safe slug from title, transliterating Cyrillic with
// cyrillicTranslit and other scripts with unidecode, and truncates the
// result to max bytes.
func Slugify(title string, max int) string {
	s := slug.Make(cyrillicTranslit.Replace(strings.ToLower(title)))
	if max > 0 && len(s) > max {
		s = strings.TrimRight(s[:max], "-")
	}
	return s
}

// ValidateNoteTitle checks the title of a note.
func ValidateNoteTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if utf8.RuneCountInString(title) > MaxNoteTitleLength {
		return &ValidationError{Field: "title", Message: "too long"}
	}
	return nil
}

// ValidateSlug checks a user-supplied slug. Slugify output always passes.
func ValidateSlug(s string) error {
	if len(s) > MaxSlugLength {
		return &ValidationError{Field: "slug", Message: "too long"}
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return &ValidationError{Field: "slug", Message: "must contain only letters, digits, hyphens or underscores"}
		}
	}
	return nil
}
