package convert

import (
	"github.com/shopspring/decimal"

	"bagy2shopify/internal/bagy"
)

var kilogramLimit = decimal.NewFromInt(50)

// Grams converts a source weight to grams. The source carries no unit:
// values below 50 are taken as kilograms, the rest as grams already.
func Grams(w bagy.Amount) int {
	if !w.Valid {
		return 0
	}
	if w.Value.LessThan(kilogramLimit) {
		return int(w.Value.Mul(decimal.NewFromInt(1000)).IntPart())
	}
	return int(w.Value.IntPart())
}
