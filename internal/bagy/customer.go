package bagy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"bagy2shopify/internal/apperr"
)

// GetCustomer fetches a single customer by id.
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	c.log().Debug("buscando cliente", zap.String("customer_id", id))

	status, body, err := c.get(ctx, "/customers/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apperr.New(apperr.KindTransport, fmt.Sprintf("API returned status %d for customer %s", status, id), nil)
	}

	var customer Customer
	if err := json.Unmarshal(body, &customer); err != nil {
		return nil, apperr.New(apperr.KindTransport, "failed to decode customer", err)
	}
	return &customer, nil
}
