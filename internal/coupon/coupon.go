// Package coupon imports the exported source coupons as price rules and
// discount codes on the target store.
package coupon

import (
	"encoding/json"
	"strings"
	"unicode"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/sheet"
	"bagy2shopify/internal/shopify"
)

const maxCodeLength = 20

// Coupon is one active row of the coupons sheet.
type Coupon struct {
	ID                     string
	Name                   string
	Code                   string
	ValueType              string
	Value                  bagy.Amount
	SingleUsage            bool
	UsageLimit             bagy.Amount
	MinPurchase            bagy.Amount
	MinQuantity            bagy.Amount
	DateFrom               string
	DateTo                 string
	PrerequisiteProductIDs []string
	EntitledProductIDs     []string
}

// FromRecord reads a coupons sheet row. A missing code is derived from
// the coupon name.
func FromRecord(rec sheet.Record) Coupon {
	c := Coupon{
		ID:                     rec.Get("id"),
		Name:                   rec.Get("name"),
		Code:                   rec.Get("codes"),
		ValueType:              rec.Get("value_type"),
		Value:                  bagy.ParseAmount(rec.Get("value")),
		SingleUsage:            bagy.ParseFlag(rec.Get("single_usage")),
		UsageLimit:             bagy.ParseAmount(rec.Get("usage_limit")),
		MinPurchase:            bagy.ParseAmount(rec.Get("min_purchase")),
		MinQuantity:            bagy.ParseAmount(rec.Get("min_quantity")),
		DateFrom:               rec.Get("date_from"),
		DateTo:                 rec.Get("date_to"),
		PrerequisiteProductIDs: splitIDs(rec.Get("prerequisite_product_ids")),
		EntitledProductIDs:     splitIDs(rec.Get("entitled_product_ids")),
	}
	if c.Code == "" {
		c.Code = CodeFromName(c.Name, c.ID)
	}
	return c
}

// Load reads the coupons sheet and keeps the active rows.
func Load(path string) ([]Coupon, error) {
	recs, err := sheet.Read(path)
	if err != nil {
		return nil, err
	}
	var out []Coupon
	for _, rec := range recs {
		if !bagy.ParseFlag(rec.Get("active")) {
			continue
		}
		out = append(out, FromRecord(rec))
	}
	return out, nil
}

// CodeFromName keeps letters and digits of name, uppercased and cut to 20
// characters. An empty result falls back to CUPOM<id>.
func CodeFromName(name, id string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if n == maxCodeLength {
			break
		}
		b.WriteString(strings.ToUpper(string(r)))
		n++
	}
	if b.Len() == 0 {
		return "CUPOM" + id
	}
	return b.String()
}

// PriceRule maps the coupon onto the target discount model.
func (c Coupon) PriceRule() shopify.PriceRule {
	rule := shopify.PriceRule{
		Title:             c.Name,
		TargetType:        "line_item",
		TargetSelection:   "all",
		AllocationMethod:  "across",
		ValueType:         shopify.ValueFixedAmount,
		Value:             "-" + c.Value.Value.String(),
		CustomerSelection: shopify.SelectionAll,
		OncePerCustomer:   c.SingleUsage,
		StartsAt:          c.DateFrom,
		EndsAt:            c.DateTo,
	}
	if c.ValueType == shopify.ValuePercentage {
		rule.ValueType = shopify.ValuePercentage
	}
	if !c.UsageLimit.IsZero() {
		limit := c.UsageLimit.Int()
		rule.UsageLimit = &limit
	}
	if !c.MinPurchase.IsZero() {
		rule.PrerequisiteSubtotalRange = &shopify.Range{GreaterThanOrEqualTo: c.MinPurchase.String()}
	}
	if !c.MinQuantity.IsZero() {
		rule.PrerequisiteQuantityRange = &shopify.Range{GreaterThanOrEqualTo: c.MinQuantity.Int()}
	}
	rule.PrerequisiteProductIDs = numbers(c.PrerequisiteProductIDs)
	rule.EntitledProductIDs = numbers(c.EntitledProductIDs)
	return rule
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func numbers(ids []string) []json.Number {
	if len(ids) == 0 {
		return nil
	}
	out := make([]json.Number, len(ids))
	for i, id := range ids {
		out[i] = json.Number(id)
	}
	return out
}
