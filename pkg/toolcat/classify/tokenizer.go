package classify

import (
	"strings"
	"unicode"
)

// Tokenizer splits mixed Latin/CJK text into features. Latin runs become
// lower-cased words; Han runs become overlapping character bigrams, since
// Chinese text has no word separators.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize returns the features of text in order of appearance.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	var han []rune

	flushWord := func() {
		if word.Len() > 0 {
			if w := t.processWord(word.String()); w != "" {
				tokens = append(tokens, w)
			}
			word.Reset()
		}
	}
	flushHan := func() {
		tokens = append(tokens, t.hanFeatures(han)...)
		han = han[:0]
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flushWord()
			han = append(han, r)
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-':
			flushHan()
			word.WriteRune(unicode.ToLower(r))
		default:
			flushWord()
			flushHan()
		}
	}
	flushWord()
	flushHan()

	return tokens
}

func (t *Tokenizer) hanFeatures(run []rune) []string {
	switch len(run) {
	case 0:
		return nil
	case 1:
		if t.isStopword(string(run)) {
			return nil
		}
		return []string{string(run)}
	}
	out := make([]string, 0, len(run)-1)
	for i := 0; i+1 < len(run); i++ {
		gram := string(run[i : i+2])
		if !t.isStopword(gram) {
			out = append(out, gram)
		}
	}
	return out
}

// processWord trims hyphens and drops short, numeric and stop words.
func (t *Tokenizer) processWord(token string) string {
	word := strings.Trim(token, "-")
	for strings.Contains(word, "--") {
		word = strings.ReplaceAll(word, "--", "-")
	}
	if len(word) <= 1 || isNumericOnly(word) || t.isStopword(word) {
		return ""
	}
	return word
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// DefaultStopwords are frequent function words of tool descriptions.
var DefaultStopwords = []string{
	"the", "and", "for", "with", "of", "to", "in", "on", "is", "an", "by", "your", "you",
	"ai", "tool", "tools", "的", "和", "与", "是", "在", "一个", "工具",
}
