// Package voucher turns positive cashback balances into single-use
// discount codes on the target store.
package voucher

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/shopify"
)

const (
	StatusCreated  = "created"
	StatusTestMode = "test_mode"

	sourceTimeLayout = "2006-01-02 15:04:05"
	nameChars        = 8
	idChars          = 4
	defaultValidity  = 365 * 24 * time.Hour
)

type Voucher struct {
	CustomerID        string
	CustomerName      string
	CustomerEmail     string
	ShopifyCustomerID int64
	Balance           decimal.Decimal
	// Expiration is the raw next_expiration value; ExpiresAt its
	// end-of-day timestamp.
	Expiration  string
	ExpiresAt   string
	Code        string
	PriceRuleID int64
	Status      string
}

// Restricted reports whether the code only works for one target customer.
func (v Voucher) Restricted() bool { return v.ShopifyCustomerID != 0 }

// Code builds CASHBACK-<first 8 letters/digits of name>-<last 4 of id>.
func Code(name, customerID string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if n == nameChars {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteString(strings.ToUpper(string(r)))
			n++
		}
	}
	id := []rune(customerID)
	if len(id) > idChars {
		id = id[len(id)-idChars:]
	}
	return "CASHBACK-" + b.String() + "-" + string(id)
}

// ExpiresAt returns the end of day of the source expiration, or one year
// from now when it is absent or unparsable.
func ExpiresAt(raw string, now time.Time) string {
	if t, err := time.Parse(sourceTimeLayout, strings.TrimSpace(raw)); err == nil {
		return t.Format("2006-01-02") + "T23:59:59Z"
	}
	return now.Add(defaultValidity).Format("2006-01-02") + "T23:59:59Z"
}

// DisplayDate renders the source expiration as dd/mm/yyyy, or returns it
// unchanged when it does not parse.
func DisplayDate(raw string) string {
	if t, err := time.Parse(sourceTimeLayout, strings.TrimSpace(raw)); err == nil {
		return t.Format("02/01/2006")
	}
	if raw == "" {
		return "Sem data"
	}
	return raw
}

// Positive keeps balances above zero that have a customer id. limit <= 0
// keeps all of them.
func Positive(balances []bagy.CashbackBalance, limit int) []bagy.CashbackBalance {
	var out []bagy.CashbackBalance
	for _, b := range balances {
		if b.CustomerID == "" || !b.Balance.Valid || !b.Balance.Value.IsPositive() {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// PriceRule is the fixed amount, single use rule backing the voucher. The
// order subtotal must reach the voucher value.
func (v Voucher) PriceRule(now time.Time) shopify.PriceRule {
	value := v.Balance.StringFixed(2)
	limit := 1
	rule := shopify.PriceRule{
		Title:                     "Cashback " + v.CustomerName + " - R$ " + value,
		TargetType:                "line_item",
		TargetSelection:           "all",
		AllocationMethod:          "across",
		ValueType:                 shopify.ValueFixedAmount,
		Value:                     "-" + value,
		CustomerSelection:         shopify.SelectionAll,
		OncePerCustomer:           true,
		UsageLimit:                &limit,
		StartsAt:                  now.UTC().Format("2006-01-02T15:04:05Z"),
		EndsAt:                    v.ExpiresAt,
		PrerequisiteSubtotalRange: &shopify.Range{GreaterThanOrEqualTo: value},
	}
	if v.Restricted() {
		rule.CustomerSelection = shopify.SelectionPrerequisite
		rule.PrerequisiteCustomerIDs = []int64{v.ShopifyCustomerID}
	}
	return rule
}
