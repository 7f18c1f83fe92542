package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizerMixedScripts(t *testing.T) {
	tok := NewTokenizer(DefaultStopwords)

	got := tok.Tokenize("ChatGPT 是一个聊天机器人, GPT-4 powered!")
	assert.Contains(t, got, "chatgpt")
	assert.Contains(t, got, "聊天")
	assert.Contains(t, got, "机器")
	assert.Contains(t, got, "gpt-4")
	assert.Contains(t, got, "powered")
	assert.NotContains(t, got, "一个", "stopword bigram")
}

func TestTokenizerDropsNoise(t *testing.T) {
	tok := NewTokenizer([]string{"the"})

	got := tok.Tokenize("The 2024 -- a --x-- models")
	assert.Equal(t, []string{"models"}, got)
}

func TestTokenizerSingleHanCharacter(t *testing.T) {
	tok := NewTokenizer(nil)
	assert.Equal(t, []string{"图", "app"}, tok.Tokenize("图 app"))
}
