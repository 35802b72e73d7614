package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) CreatePriceRule(ctx context.Context, rule PriceRule) (*PriceRule, error) {
	in := struct {
		PriceRule PriceRule `json:"price_rule"`
	}{rule}
	var out struct {
		PriceRule PriceRule `json:"price_rule"`
	}
	if _, err := c.do(ctx, "create_price_rule", http.MethodPost, "/price_rules.json", nil, in, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out.PriceRule, nil
}

// CreateDiscountCode attaches a redeemable code to an existing price rule.
func (c *Client) CreateDiscountCode(ctx context.Context, priceRuleID int64, code string) (*DiscountCode, error) {
	in := struct {
		DiscountCode DiscountCode `json:"discount_code"`
	}{DiscountCode{Code: code}}
	var out struct {
		DiscountCode DiscountCode `json:"discount_code"`
	}
	path := fmt.Sprintf("/price_rules/%d/discount_codes.json", priceRuleID)
	if _, err := c.do(ctx, "create_discount_code", http.MethodPost, path, nil, in, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out.DiscountCode, nil
}

// ListPriceRules returns the first page of existing price rules.
func (c *Client) ListPriceRules(ctx context.Context) ([]PriceRule, error) {
	var out struct {
		PriceRules []PriceRule `json:"price_rules"`
	}
	params := url.Values{"limit": {pageLimit}}
	if _, err := c.do(ctx, "list_price_rules", http.MethodGet, "/price_rules.json", params, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.PriceRules, nil
}
