package shopify

import (
	"context"
	"net/http"
	"net/url"
)

// SearchCustomerByEmail returns the first customer with exactly this email,
// or nil when there is none.
func (c *Client) SearchCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	params := url.Values{"query": {"email:" + email}, "limit": {"1"}}
	var out struct {
		Customers []Customer `json:"customers"`
	}
	if _, err := c.do(ctx, "search_customer", http.MethodGet, "/customers/search.json", params, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	if len(out.Customers) == 0 {
		return nil, nil
	}
	return &out.Customers[0], nil
}
