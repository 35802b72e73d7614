package match

import (
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"bagy2shopify/internal/logger"
)

// DefaultThreshold is the minimum similarity for a pair to be reported.
const DefaultThreshold = 0.7

// Item is one product on either side of the comparison.
type Item struct {
	ID   string
	Name string
	URL  string
}

// Pair is an accepted correspondence between a target product and the
// source product that scored highest for it.
type Pair struct {
	Target Item
	Source Item
	Score  float64
}

// Similarity returns the matching-blocks ratio of the two names after
// normalization, in [0, 1].
func Similarity(a, b string) float64 {
	return ratio(chars(Normalize(a)), chars(Normalize(b)))
}

func ratio(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	return difflib.NewMatcher(a, b).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

type Matcher struct {
	Threshold float64
	Log       *zap.Logger
}

func NewMatcher(threshold float64, log *zap.Logger) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{Threshold: threshold, Log: logger.OrNop(log)}
}

// Match scans every source for each target and keeps the best scoring one
// when it reaches the threshold. Ties keep the earliest source.
func (m *Matcher) Match(targets, sources []Item) []Pair {
	log := logger.OrNop(m.Log)
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	normalized := make([][]string, len(sources))
	for i, s := range sources {
		normalized[i] = chars(Normalize(s.Name))
	}

	var pairs []Pair
	for ti, t := range targets {
		name := chars(Normalize(t.Name))
		best, bestScore := -1, 0.0
		for si := range sources {
			if len(name) == 0 || len(normalized[si]) == 0 {
				continue
			}
			score := ratio(name, normalized[si])
			if score > bestScore {
				best, bestScore = si, score
			}
		}
		if best >= 0 && bestScore >= threshold {
			pairs = append(pairs, Pair{Target: t, Source: sources[best], Score: bestScore})
		}
		if (ti+1)%100 == 0 {
			log.Info("comparando produtos", zap.Int("processed", ti+1), zap.Int("total", len(targets)), zap.Int("matches", len(pairs)))
		}
	}
	return pairs
}
