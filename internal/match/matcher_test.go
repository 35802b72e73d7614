package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "camiseta basica azul", Normalize("  Camiseta   Básica / Azul!! "))
	assert.Equal(t, "calca jeans 42", Normalize("Calça (Jeans) #42"))
	assert.Equal(t, "", Normalize("***"))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("Camiseta Polo Azul M", "Camiseta polo azul M"), 1e-9)
	assert.GreaterOrEqual(t, Similarity("Camiseta Polo Azul M", "Camiseta Polo Azul G"), DefaultThreshold)
	assert.Less(t, Similarity("Tênis Corrida", "Bolsa Couro"), DefaultThreshold)
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestMatchPicksBestAboveThreshold(t *testing.T) {
	sources := []Item{
		{ID: "10", Name: "Bolsa Couro Caramelo", URL: "https://loja/bolsa"},
		{ID: "11", Name: "Camiseta Polo Azul M", URL: "https://loja/polo-azul-m"},
		{ID: "12", Name: "Camiseta Polo Azul G", URL: "https://loja/polo-azul-g"},
	}
	targets := []Item{
		{ID: "900", Name: "Camiseta polo azul M"},
		{ID: "901", Name: "Relógio Digital"},
	}

	pairs := NewMatcher(0, nil).Match(targets, sources)
	require.Len(t, pairs, 1)
	assert.Equal(t, "900", pairs[0].Target.ID)
	assert.Equal(t, "11", pairs[0].Source.ID)
	assert.Equal(t, "https://loja/polo-azul-m", pairs[0].Source.URL)
	assert.InDelta(t, 1.0, pairs[0].Score, 1e-9)
}

func TestMatchTieKeepsFirstSource(t *testing.T) {
	sources := []Item{{ID: "a", Name: "Meia Branca"}, {ID: "b", Name: "meia branca"}}
	pairs := NewMatcher(DefaultThreshold, nil).Match([]Item{{ID: "t", Name: "Meia Branca"}}, sources)
	require.Len(t, pairs, 1)
	assert.Equal(t, "a", pairs[0].Source.ID)
}

func TestMatchThresholdIsInclusive(t *testing.T) {
	score := Similarity("Camiseta Polo", "Camiseta Gola")
	pairs := NewMatcher(score, nil).Match([]Item{{Name: "Camiseta Polo"}}, []Item{{Name: "Camiseta Gola"}})
	assert.Len(t, pairs, 1)

	pairs = NewMatcher(score+0.01, nil).Match([]Item{{Name: "Camiseta Polo"}}, []Item{{Name: "Camiseta Gola"}})
	assert.Empty(t, pairs)
}

func TestMatchSkipsEmptyNames(t *testing.T) {
	pairs := NewMatcher(DefaultThreshold, nil).Match([]Item{{Name: "!!!"}}, []Item{{Name: ""}})
	assert.Empty(t, pairs)
}
