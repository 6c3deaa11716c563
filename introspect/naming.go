package introspect

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCategory returns the category a resource class is documented
// under when no extractor assigns one: the lower-cased class name.
func DefaultCategory(className string) string {
	return cases.Lower(language.Und).String(className)
}

// Nickname builds a lower camel case operation nickname from words, e.g.
// ("get", "bookmark") yields "getBookmark". Word separators such as
// '-', '_' and spaces are removed.
func Nickname(words ...string) string {
	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	for _, w := range words {
		for part := range strings.FieldsFuncSeq(w, isSeparator) {
			b.WriteString(title.String(part))
		}
	}

	s := b.String()
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '/' || r == '.' || unicode.IsSpace(r)
}
