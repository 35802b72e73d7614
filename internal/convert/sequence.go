package convert

import (
	"sort"

	"bagy2shopify/internal/bagy"
)

// unknownSizeRank sorts absent and unrecognized sizes after every known one.
const unknownSizeRank = 6

var sizeRank = map[string]int{"P": 1, "M": 2, "G": 3, "GG": 4, "XG": 5}

// SizeRank returns the sort rank of a size option value.
func SizeRank(size string) int {
	if r, ok := sizeRank[size]; ok {
		return r
	}
	return unknownSizeRank
}

// SortVariants returns a copy of vs ordered by (color name, size rank).
// Absent colors sort as "" and so come first. The sort is stable.
func SortVariants(vs []bagy.Variant) []bagy.Variant {
	sorted := make([]bagy.Variant, len(vs))
	copy(sorted, vs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := sorted[i].ColorName(), sorted[j].ColorName()
		if ci != cj {
			return ci < cj
		}
		return SizeRank(sorted[i].SizeName()) < SizeRank(sorted[j].SizeName())
	})
	return sorted
}
