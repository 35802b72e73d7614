package shopify

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const (
	pageLimit     = "250"
	productFields = "id,title,handle,created_at,updated_at,status"
)

// ListProducts loads the whole catalog following Link header cursors.
// On failure the products loaded so far are returned with the error.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	pageInfo := ""
	for {
		params := url.Values{"limit": {pageLimit}, "fields": {productFields}}
		if pageInfo != "" {
			params.Set("page_info", pageInfo)
		}

		var page struct {
			Products []Product `json:"products"`
		}
		header, err := c.do(ctx, "list_products", http.MethodGet, "/products.json", params, nil, http.StatusOK, &page)
		if err != nil {
			return products, err
		}
		if len(page.Products) == 0 {
			return products, nil
		}
		products = append(products, page.Products...)
		c.log().Info("produtos carregados da Shopify", zap.Int("total", len(products)))

		pageInfo = nextPageInfo(header.Get("Link"))
		if pageInfo == "" {
			return products, nil
		}
		if err := c.wait(ctx); err != nil {
			return products, err
		}
	}
}
