package classify

import (
	"fmt"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// LabelScore is one candidate label of a semantic model.
type LabelScore struct {
	Label string
	Score float64
}

// Semantic scores text against a fixed label set. Implementations return
// scores in [0, 1] sorted best first and must be safe for concurrent use.
type Semantic interface {
	Scores(text string) ([]LabelScore, error)
}

// Label is a semantic label with the prototype text that describes it.
type Label struct {
	Name      string `yaml:"name"`
	Prototype string `yaml:"prototype"`
}

// EmbedderOptions configures an Embedder.
type EmbedderOptions struct {
	Dim       int // feature-hashing dimension
	MemoSize  int // cached texts; 0 disables the memo
	Tokenizer *Tokenizer
}

// DefaultEmbedderOptions returns the options used by the config loader.
func DefaultEmbedderOptions() EmbedderOptions {
	return EmbedderOptions{Dim: 1024, MemoSize: 4096}
}

// Embedder is a local multilingual embedding model: texts are mapped to
// hashed, log-weighted feature vectors (Latin words and CJK bigrams) and
// compared to label prototypes by cosine similarity. Prototypes are built
// once; after construction the model is read-only.
type Embedder struct {
	dim    int
	tok    *Tokenizer
	labels []string
	protos [][]float64
	memo   *lru.Cache[string, []LabelScore]
}

// NewEmbedder embeds each label prototype (label name included).
func NewEmbedder(labels []Label, opts EmbedderOptions) (*Embedder, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("embedder: no labels")
	}
	if opts.Dim <= 0 {
		opts.Dim = DefaultEmbedderOptions().Dim
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = NewTokenizer(DefaultStopwords)
	}

	e := &Embedder{dim: opts.Dim, tok: opts.Tokenizer}
	for _, l := range labels {
		e.labels = append(e.labels, l.Name)
		e.protos = append(e.protos, e.Embed(l.Name+" "+l.Prototype))
	}

	if opts.MemoSize > 0 {
		memo, err := lru.New[string, []LabelScore](opts.MemoSize)
		if err != nil {
			return nil, fmt.Errorf("embedder memo: %w", err)
		}
		e.memo = memo
	}
	return e, nil
}

// Embed returns the unit-length feature vector of text. Text without
// features yields the zero vector.
func (e *Embedder) Embed(text string) []float64 {
	vec := make([]float64, e.dim)
	counts := make(map[uint64]int)
	for _, tok := range e.tok.Tokenize(text) {
		counts[xxhash.Sum64String(tok)%uint64(e.dim)]++
	}
	var norm float64
	for slot, n := range counts {
		w := 1 + math.Log(float64(n))
		vec[slot] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Scores implements Semantic.
func (e *Embedder) Scores(text string) ([]LabelScore, error) {
	if e.memo != nil {
		if cached, ok := e.memo.Get(text); ok {
			return cloneScores(cached), nil
		}
	}

	vec := e.Embed(text)
	scores := make([]LabelScore, len(e.labels))
	for i, proto := range e.protos {
		scores[i] = LabelScore{Label: e.labels[i], Score: cosine(vec, proto)}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if e.memo != nil {
		e.memo.Add(text, cloneScores(scores))
	}
	return scores, nil
}

// Labels returns the label names in table order.
func (e *Embedder) Labels() []string {
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}

func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	// Both vectors are unit length or zero and non-negative.
	return math.Max(0, math.Min(1, dot))
}

func cloneScores(in []LabelScore) []LabelScore {
	out := make([]LabelScore, len(in))
	copy(out, in)
	return out
}
