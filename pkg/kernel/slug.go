package kernel

import (
	"strings"
	"unicode"
)

const slugSeparator = '-'

// Slug is the canonical, comparable form of a free-text identifier such as
// a company name, job title or location.
type Slug string

func (s Slug) String() string { return string(s) }
func (s Slug) IsEmpty() bool  { return string(s) == "" }

// Canonicalize lower-cases text and collapses every run of characters that
// are not letters or digits into a single separator, trimming separators at
// both ends. It is idempotent.
func Canonicalize(text string) Slug {
	var b strings.Builder
	b.Grow(len(text))

	pending := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteRune(slugSeparator)
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}

	return Slug(b.String())
}

// Contains reports whether term occurs in s. An empty term matches everything.
func (s Slug) Contains(term Slug) bool {
	return strings.Contains(string(s), string(term))
}

// Display rebuilds a human readable form. The original text is not recoverable.
func (s Slug) Display() string {
	words := strings.Split(string(s), string(slugSeparator))
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
