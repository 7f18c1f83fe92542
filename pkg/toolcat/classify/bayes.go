package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
)

// Sample is one labeled tool used to train the fallback model.
type Sample struct {
	Name        string
	Description string
	Category    string
}

// Model is a multinomial naive Bayes text classifier with Laplace
// smoothing, trained offline and loaded read-only.
type Model struct {
	Classes []ModelClass `json:"classes"`

	tok *Tokenizer
}

// ModelClass holds the log probabilities of one category.
type ModelClass struct {
	Name        string             `json:"name"`
	LogPrior    float64            `json:"log_prior"`
	LogLikely   map[string]float64 `json:"log_likelihood"`
	LogUnseen   float64            `json:"log_unseen"`
	SampleCount int                `json:"samples"`
}

// Train fits a model. Samples without a category are ignored.
func Train(samples []Sample) (*Model, error) {
	tok := NewTokenizer(DefaultStopwords)

	type stats struct {
		docs   int
		total  int
		counts map[string]int
	}
	byClass := make(map[string]*stats)
	vocab := make(map[string]struct{})
	docs := 0

	for _, s := range samples {
		if s.Category == "" {
			continue
		}
		st, ok := byClass[s.Category]
		if !ok {
			st = &stats{counts: make(map[string]int)}
			byClass[s.Category] = st
		}
		st.docs++
		docs++
		for _, f := range tok.Tokenize(s.Name + " " + s.Description) {
			st.counts[f]++
			st.total++
			vocab[f] = struct{}{}
		}
	}
	if docs == 0 {
		return nil, fmt.Errorf("train: %w: no labeled samples", internalerr.ErrInvalidInput)
	}

	names := make([]string, 0, len(byClass))
	for name := range byClass {
		names = append(names, name)
	}
	sort.Strings(names)

	v := float64(len(vocab))
	m := &Model{tok: tok}
	for _, name := range names {
		st := byClass[name]
		denom := float64(st.total) + v + 1
		class := ModelClass{
			Name:        name,
			LogPrior:    math.Log(float64(st.docs) / float64(docs)),
			LogLikely:   make(map[string]float64, len(st.counts)),
			LogUnseen:   math.Log(1 / denom),
			SampleCount: st.docs,
		}
		for f, n := range st.counts {
			class.LogLikely[f] = math.Log((float64(n) + 1) / denom)
		}
		m.Classes = append(m.Classes, class)
	}
	return m, nil
}

// Predict returns the most probable category and its posterior
// probability. ok is false when the model is empty.
func (m *Model) Predict(name, description string) (category string, prob float64, ok bool) {
	if m == nil || len(m.Classes) == 0 {
		return "", 0, false
	}
	features := m.tokenizer().Tokenize(name + " " + description)

	logs := make([]float64, len(m.Classes))
	best := 0
	for i, c := range m.Classes {
		lp := c.LogPrior
		for _, f := range features {
			if l, seen := c.LogLikely[f]; seen {
				lp += l
			} else {
				lp += c.LogUnseen
			}
		}
		logs[i] = lp
		if lp > logs[best] {
			best = i
		}
	}

	var sum float64
	for _, lp := range logs {
		sum += math.Exp(lp - logs[best])
	}
	return m.Classes[best].Name, 1 / sum, true
}

func (m *Model) tokenizer() *Tokenizer {
	if m.tok == nil {
		return NewTokenizer(DefaultStopwords)
	}
	return m.tok
}

// Save writes the model as JSON, creating parent directories.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadModel reads a model saved by Save. A missing file returns an error
// wrapping internalerr.ErrNotFound.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("model %s: %w", path, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	m.tok = NewTokenizer(DefaultStopwords)
	return &m, nil
}
