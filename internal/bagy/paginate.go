package bagy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/observability"
)

// Listing describes one paginated endpoint.
type Listing struct {
	Path   string
	Params url.Values
	// Fallback, when set, replaces Params for a single retry of a page that
	// failed with 500 and a body mentioning "startsWith" (the cashback
	// endpoint rejects its sort parameter that way).
	Fallback url.Values
}

var (
	Products  = Listing{Path: "/products"}
	Customers = Listing{Path: "/customers"}
	Discounts = Listing{Path: "/discounts"}
	Cashback  = Listing{
		Path:     "/cashbacks/customers/balances",
		Params:   url.Values{"limit": {"100"}, "sort": {"-id"}},
		Fallback: url.Values{"limit": {"100"}},
	}
)

// Paginate walks page=1,2,... and hands each page's records to handler.
// It stops when links.next is empty or the page reaches meta.last_page.
// A non-200 page ends pagination without an error; transport failures and
// handler errors are returned.
func (c *Client) Paginate(ctx context.Context, l Listing, handler func([]json.RawMessage) error) error {
	lastPage := 0
	fetched := 0

	for page := 1; ; page++ {
		if page > 1 {
			if err := c.wait(ctx); err != nil {
				return apperr.New(apperr.KindTransport, "paginação cancelada", err)
			}
		}

		status, body, err := c.getPage(ctx, l.Path, l.Params, page)
		if err != nil {
			return err
		}

		if status == http.StatusInternalServerError && l.Fallback != nil && bytes.Contains(body, []byte("startsWith")) {
			c.log().Warn("tentando novamente sem parâmetros de ordenação",
				zap.String("endpoint", l.Path), zap.Int("page", page))
			status, body, err = c.getPage(ctx, l.Path, l.Fallback, page)
			if err != nil {
				return err
			}
		}

		if status != http.StatusOK {
			observability.PageFailures.WithLabelValues(l.Path, strconv.Itoa(status)).Inc()
			c.log().Warn("erro na página, encerrando paginação",
				zap.String("endpoint", l.Path),
				zap.Int("page", page),
				zap.Int("status", status),
				zap.String("body", excerpt(body)))
			fmt.Fprintf(c.out(), "Erro na página %d: %d\n", page, status)
			return nil
		}

		var result pageEnvelope
		if err := json.Unmarshal(body, &result); err != nil {
			return apperr.New(apperr.KindTransport, fmt.Sprintf("failed to decode page %d of %s", page, l.Path), err)
		}

		if page == 1 {
			lastPage = result.Meta.LastPage
			fmt.Fprintf(c.out(), "Total de páginas: %d\n", lastPage)
			fmt.Fprintf(c.out(), "Total de registros: %d\n", result.Meta.Total)
		}

		observability.PagesFetched.WithLabelValues(l.Path).Inc()
		observability.RecordsFetched.WithLabelValues(l.Path).Add(float64(len(result.Data)))

		fetched += len(result.Data)
		fmt.Fprintf(c.out(), "Processando página %d de %d... (%d registros até agora)\n", page, lastPage, fetched)

		if err := handler(result.Data); err != nil {
			return err
		}

		if result.Links.Next == "" || (lastPage > 0 && page >= lastPage) {
			return nil
		}
	}
}

// FetchAll concatenates every page of l in page order. On error the
// records gathered so far are returned along with it.
func (c *Client) FetchAll(ctx context.Context, l Listing) ([]json.RawMessage, error) {
	var records []json.RawMessage
	err := c.Paginate(ctx, l, func(page []json.RawMessage) error {
		records = append(records, page...)
		return nil
	})
	return records, err
}

func (c *Client) getPage(ctx context.Context, path string, params url.Values, page int) (int, []byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	return c.get(ctx, path, q)
}

func (c *Client) wait(ctx context.Context) error {
	if c.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
