package classify

import (
	"context"
	"fmt"

	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
)

// Stage is a tier of the hybrid classifier.
type Stage int

const (
	StageRules Stage = iota
	StageSemantic
	StageFallback
	StageUnclassified
)

func (s Stage) String() string {
	switch s {
	case StageRules:
		return "rules"
	case StageSemantic:
		return "semantic"
	case StageFallback:
		return "fallback"
	case StageUnclassified:
		return "unclassified"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Thresholds are the confidence bars a tier must exceed (strictly) to
// decide.
type Thresholds struct {
	Rule     float64 `yaml:"rule"`
	Semantic float64 `yaml:"semantic"`
}

// DefaultThresholds is the single source of truth for tier thresholds.
var DefaultThresholds = Thresholds{Rule: 0.8, Semantic: 0.7}

// MaxSemanticRunes bounds the text handed to the semantic tier.
const MaxSemanticRunes = 500

// Fallback is the trained last-resort model.
type Fallback interface {
	Predict(name, description string) (category string, prob float64, ok bool)
}

// Decision is the outcome of a classification and the tier that made it.
type Decision struct {
	Category   string
	Confidence float64
	Stage      Stage
}

// Hybrid runs rules, then the semantic model, then the trained fallback.
// Each tier either decides or hands over to the next; a missing tier is
// skipped. When every tier passes, Classify returns ErrUnclassifiable.
type Hybrid struct {
	rules      *Rules
	semantic   Semantic
	fallback   Fallback
	thresholds Thresholds
}

// NewHybrid wires the tiers. Any of them may be nil.
func NewHybrid(rules *Rules, semantic Semantic, fallback Fallback, th Thresholds) *Hybrid {
	return &Hybrid{
		rules:      rules,
		semantic:   semantic,
		fallback:   fallback,
		thresholds: th,
	}
}

// HasFallback reports whether a trained model is loaded.
func (h *Hybrid) HasFallback() bool {
	return h.fallback != nil
}

// Classify walks the tiers until one decides.
func (h *Hybrid) Classify(ctx context.Context, name, description string) (Decision, error) {
	stage := StageRules
	for {
		if err := ctx.Err(); err != nil {
			return Decision{Stage: stage}, err
		}
		d, next, done := h.step(stage, name, description)
		if done {
			return d, nil
		}
		if next == StageUnclassified {
			return Decision{Stage: StageUnclassified}, internalerr.ErrUnclassifiable
		}
		stage = next
	}
}

// step runs one tier. done means the tier decided; otherwise next names
// the tier to try.
func (h *Hybrid) step(stage Stage, name, description string) (d Decision, next Stage, done bool) {
	switch stage {
	case StageRules:
		if h.rules == nil {
			return Decision{}, StageSemantic, false
		}
		res := h.rules.Classify(name, description)
		if res.Confidence > h.thresholds.Rule {
			return Decision{Category: res.Category, Confidence: res.Confidence, Stage: StageRules}, 0, true
		}
		return Decision{}, StageSemantic, false

	case StageSemantic:
		if h.semantic == nil {
			return Decision{}, StageFallback, false
		}
		scores, err := h.semantic.Scores(SemanticText(name, description))
		if err != nil || len(scores) == 0 {
			return Decision{}, StageFallback, false
		}
		top := scores[0]
		for _, s := range scores[1:] {
			if s.Score > top.Score {
				top = s
			}
		}
		if top.Score > h.thresholds.Semantic {
			return Decision{Category: top.Label, Confidence: top.Score, Stage: StageSemantic}, 0, true
		}
		return Decision{}, StageFallback, false

	case StageFallback:
		if h.fallback == nil {
			return Decision{}, StageUnclassified, false
		}
		cat, prob, ok := h.fallback.Predict(name, description)
		if !ok || cat == "" {
			return Decision{}, StageUnclassified, false
		}
		return Decision{Category: cat, Confidence: prob, Stage: StageFallback}, 0, true

	default:
		return Decision{}, StageUnclassified, false
	}
}

// SemanticText builds the "name: description" input, truncated to
// MaxSemanticRunes runes.
func SemanticText(name, description string) string {
	text := []rune(name + ": " + description)
	if len(text) > MaxSemanticRunes {
		text = text[:MaxSemanticRunes]
	}
	return string(text)
}
