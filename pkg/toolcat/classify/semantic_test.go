package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedderScoresPrototypeText(t *testing.T) {
	e, err := NewEmbedder(DefaultLabels, DefaultEmbedderOptions())
	require.NoError(t, err)

	label := DefaultLabels[3]
	scores, err := e.Scores(label.Name + " " + label.Prototype)
	require.NoError(t, err)
	require.Len(t, scores, len(DefaultLabels))

	assert.Equal(t, label.Name, scores[0].Label)
	assert.InDelta(t, 1.0, scores[0].Score, 1e-9)
	for i := 1; i < len(scores); i++ {
		assert.LessOrEqual(t, scores[i].Score, scores[i-1].Score, "scores sorted best first")
		assert.GreaterOrEqual(t, scores[i].Score, 0.0)
	}
}

func TestEmbedderParaphrase(t *testing.T) {
	e, err := NewEmbedder(DefaultLabels, DefaultEmbedderOptions())
	require.NoError(t, err)

	scores, err := e.Scores("Lingo: real-time speech translation between multilingual speakers, translate any voice")
	require.NoError(t, err)
	top := []string{scores[0].Label, scores[1].Label}
	assert.Contains(t, top, "🌍AI语言翻译")
}

func TestEmbedderEmptyText(t *testing.T) {
	e, err := NewEmbedder(DefaultLabels, EmbedderOptions{Dim: 64})
	require.NoError(t, err)

	scores, err := e.Scores("")
	require.NoError(t, err)
	for _, s := range scores {
		assert.Zero(t, s.Score)
	}
}

func TestEmbedderMemoReturnsCopies(t *testing.T) {
	e, err := NewEmbedder(DefaultLabels, DefaultEmbedderOptions())
	require.NoError(t, err)

	first, err := e.Scores("视频剪辑")
	require.NoError(t, err)
	first[0].Label = "mutated"

	second, err := e.Scores("视频剪辑")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Label)
}

func TestNewEmbedderRequiresLabels(t *testing.T) {
	_, err := NewEmbedder(nil, DefaultEmbedderOptions())
	assert.Error(t, err)
}

func TestEmbedderLabels(t *testing.T) {
	e, err := NewEmbedder(DefaultLabels[:2], EmbedderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultLabels[0].Name, DefaultLabels[1].Name}, e.Labels())
}
