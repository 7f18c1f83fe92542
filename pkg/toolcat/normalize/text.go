package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var markupPattern = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

// Text sanitizes free text: markup is dropped, the text is NFKC
// normalized, null bytes and control characters are removed and runs of
// whitespace collapse to one space. Text is idempotent.
func Text(s string) string {
	if markupPattern.MatchString(s) {
		s = stripMarkup(s)
	}
	s = norm.NFKC.String(s)
	return collapse(s)
}

// Name cleans a tool name without rewriting its characters: control
// characters go and whitespace collapses.
func Name(s string) string {
	return collapse(s)
}

func collapse(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// stripMarkup keeps the raw text runs of an HTML fragment. Entities stay
// escaped so a second pass sees no new markup.
func stripMarkup(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Raw())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if isHiddenTag(string(name)) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if isHiddenTag(string(name)) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func isHiddenTag(name string) bool {
	return name == "script" || name == "style"
}
