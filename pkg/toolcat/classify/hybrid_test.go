package classify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
)

type fakeSemantic struct {
	calls    int
	lastText string
	scores   []LabelScore
	err      error
}

func (f *fakeSemantic) Scores(text string) ([]LabelScore, error) {
	f.calls++
	f.lastText = text
	return f.scores, f.err
}

type fakeFallback struct {
	calls    int
	category string
	ok       bool
}

func (f *fakeFallback) Predict(name, description string) (string, float64, bool) {
	f.calls++
	return f.category, 0.4, f.ok
}

// tenKeywordRules yields confidence 0.9 for nineHits.
func tenKeywordRules() *Rules {
	return NewRules([]Category{{
		Name:     "X",
		Keywords: []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9"},
	}})
}

const nineHits = "k0 k1 k2 k3 k4 k5 k6 k7 k8"

func TestHybridRuleTierSkipsSemantic(t *testing.T) {
	sem := &fakeSemantic{scores: []LabelScore{{Label: "Y", Score: 0.99}}}
	fb := &fakeFallback{category: "Z", ok: true}
	h := NewHybrid(tenKeywordRules(), sem, fb, DefaultThresholds)

	d, err := h.Classify(context.Background(), "tool", nineHits)
	require.NoError(t, err)
	assert.Equal(t, "X", d.Category)
	assert.Equal(t, StageRules, d.Stage)
	assert.InDelta(t, 0.9, d.Confidence, 1e-9)
	assert.Equal(t, 0, sem.calls, "semantic tier must not run")
	assert.Equal(t, 0, fb.calls)
}

func TestHybridRuleThresholdIsStrict(t *testing.T) {
	sem := &fakeSemantic{scores: []LabelScore{{Label: "Y", Score: 0.9}}}
	h := NewHybrid(tenKeywordRules(), sem, nil, DefaultThresholds)

	// 8 of 10 keywords: confidence 0.8 is not above the bar.
	d, err := h.Classify(context.Background(), "tool", "k0 k1 k2 k3 k4 k5 k6 k7")
	require.NoError(t, err)
	assert.Equal(t, "Y", d.Category)
	assert.Equal(t, StageSemantic, d.Stage)
	assert.Equal(t, 1, sem.calls)
}

func TestHybridSemanticTier(t *testing.T) {
	sem := &fakeSemantic{scores: []LabelScore{
		{Label: "low", Score: 0.2},
		{Label: "high", Score: 0.75},
	}}
	fb := &fakeFallback{category: "Z", ok: true}
	h := NewHybrid(tenKeywordRules(), sem, fb, DefaultThresholds)

	d, err := h.Classify(context.Background(), "Kimi", "long context assistant")
	require.NoError(t, err)
	assert.Equal(t, "high", d.Category, "highest score wins regardless of order")
	assert.Equal(t, StageSemantic, d.Stage)
	assert.Equal(t, "Kimi: long context assistant", sem.lastText)
	assert.Equal(t, 0, fb.calls)
}

func TestHybridFallsThroughToTrainedModel(t *testing.T) {
	sem := &fakeSemantic{scores: []LabelScore{{Label: "Y", Score: 0.7}}}
	fb := &fakeFallback{category: "Z", ok: true}
	h := NewHybrid(tenKeywordRules(), sem, fb, DefaultThresholds)

	d, err := h.Classify(context.Background(), "tool", "k0")
	require.NoError(t, err)
	assert.Equal(t, "Z", d.Category)
	assert.Equal(t, StageFallback, d.Stage)
	assert.Equal(t, 1, sem.calls)
	assert.Equal(t, 1, fb.calls)
}

func TestHybridSemanticErrorFallsThrough(t *testing.T) {
	sem := &fakeSemantic{err: errors.New("model unavailable")}
	fb := &fakeFallback{category: "Z", ok: true}
	h := NewHybrid(nil, sem, fb, DefaultThresholds)

	d, err := h.Classify(context.Background(), "tool", "")
	require.NoError(t, err)
	assert.Equal(t, StageFallback, d.Stage)
}

func TestHybridUnclassifiableWithoutFallback(t *testing.T) {
	sem := &fakeSemantic{scores: []LabelScore{{Label: "Y", Score: 0.1}}}
	h := NewHybrid(tenKeywordRules(), sem, nil, DefaultThresholds)

	d, err := h.Classify(context.Background(), "tool", "nothing relevant")
	require.ErrorIs(t, err, internalerr.ErrUnclassifiable)
	assert.Equal(t, StageUnclassified, d.Stage)
	assert.Empty(t, d.Category)
	assert.False(t, h.HasFallback())
}

func TestHybridFallbackWithoutAnswer(t *testing.T) {
	fb := &fakeFallback{ok: false}
	h := NewHybrid(nil, nil, fb, DefaultThresholds)

	_, err := h.Classify(context.Background(), "tool", "")
	require.ErrorIs(t, err, internalerr.ErrUnclassifiable)
	assert.Equal(t, 1, fb.calls)
}

func TestHybridHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewHybrid(tenKeywordRules(), nil, nil, DefaultThresholds)
	_, err := h.Classify(ctx, "tool", nineHits)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSemanticTextTruncates(t *testing.T) {
	desc := strings.Repeat("描述", 400)
	text := SemanticText("名字", desc)
	assert.Equal(t, MaxSemanticRunes, utf8.RuneCountInString(text))
	assert.True(t, strings.HasPrefix(text, "名字: "))

	assert.Equal(t, "a: b", SemanticText("a", "b"))
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "rules", StageRules.String())
	assert.Equal(t, "semantic", StageSemantic.String())
	assert.Equal(t, "fallback", StageFallback.String())
	assert.Equal(t, "unclassified", StageUnclassified.String())
	assert.Equal(t, "stage(9)", Stage(9).String())
}
