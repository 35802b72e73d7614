package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{BaseURL: srv.URL + "/admin/api/2024-10", Token: "shpat_test", HTTP: srv.Client()}
}

func TestParseLinkHeader(t *testing.T) {
	header := `<https://loja.myshopify.com/admin/api/2024-10/products.json?limit=250&page_info=abc>; rel="previous", ` +
		`<https://loja.myshopify.com/admin/api/2024-10/products.json?limit=250&page_info=def>; rel="next"`
	links := parseLinkHeader(header)
	assert.Len(t, links, 2)
	assert.Equal(t, "def", nextPageInfo(header))
	assert.Equal(t, "", nextPageInfo(`<https://x/products.json?page_info=abc>; rel="previous"`))
	assert.Equal(t, "", nextPageInfo(""))
}

func TestListProductsFollowsCursor(t *testing.T) {
	var srv *httptest.Server
	var cursors []string
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-10/products.json", r.URL.Path)
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "250", r.URL.Query().Get("limit"))
		cursor := r.URL.Query().Get("page_info")
		cursors = append(cursors, cursor)

		switch cursor {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-10/products.json?limit=250&page_info=p2>; rel="next"`, srv.URL))
			fmt.Fprint(w, `{"products":[{"id":1,"title":"Camiseta","handle":"camiseta"},{"id":2,"title":"Bermuda","handle":"bermuda"}]}`)
		case "p2":
			fmt.Fprint(w, `{"products":[{"id":3,"title":"Boné","handle":"bone"}]}`)
		default:
			t.Errorf("unexpected cursor %q", cursor)
		}
	}))
	defer srv.Close()

	products, err := newTestClient(srv).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"", "p2"}, cursors)
	assert.Equal(t, "bone", products[2].Handle)
}

func TestListProductsKeepsPartialOnError(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page_info") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-10/products.json?page_info=p2>; rel="next"`, srv.URL))
			fmt.Fprint(w, `{"products":[{"id":1,"title":"A","handle":"a"}]}`)
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	products, err := newTestClient(srv).ListProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Len(t, products, 1)
}

func TestSearchCustomerByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-10/customers/search.json", r.URL.Path)
		switch r.URL.Query().Get("query") {
		case "email:ana@example.com":
			fmt.Fprint(w, `{"customers":[{"id":77,"email":"ana@example.com"}]}`)
		default:
			fmt.Fprint(w, `{"customers":[]}`)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	got, err := c.SearchCustomerByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(77), got.ID)

	got, err = c.SearchCustomerByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreatePriceRuleAndCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/admin/api/2024-10/price_rules.json":
			var in map[string]map[string]any
			assert.NoError(t, json.Unmarshal(body, &in))
			rule := in["price_rule"]
			assert.Equal(t, "Cupom 10", rule["title"])
			assert.Equal(t, "-10", rule["value"])
			assert.Nil(t, rule["usage_limit"])
			assert.Equal(t, []any{float64(55)}, rule["entitled_product_ids"])
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"price_rule":{"id":9001,"title":"Cupom 10","entitled_product_ids":[55]}}`)
		case "/admin/api/2024-10/price_rules/9001/discount_codes.json":
			assert.JSONEq(t, `{"discount_code":{"code":"DEZ"}}`, string(body))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"discount_code":{"id":5,"price_rule_id":9001,"code":"DEZ"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	rule, err := c.CreatePriceRule(context.Background(), PriceRule{
		Title:              "Cupom 10",
		ValueType:          ValuePercentage,
		Value:              "-10",
		EntitledProductIDs: []json.Number{"55"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9001), rule.ID)

	code, err := c.CreateDiscountCode(context.Background(), rule.ID, "DEZ")
	require.NoError(t, err)
	assert.Equal(t, "DEZ", code.Code)
	assert.Equal(t, int64(9001), code.PriceRuleID)
}

func TestCreatePriceRulePermissionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"errors":"This action requires merchant approval for write_price_rules scope."}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreatePriceRule(context.Background(), PriceRule{Title: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermission)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.Status)
}

func TestCreateDiscountCodeUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"errors":{"code":["must be unique"]}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateDiscountCode(context.Background(), 1, "DUP")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.NotErrorIs(t, err, ErrPermission)
}

func TestListPriceRules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"price_rules":[{"id":1,"title":"A"},{"id":2,"title":"B"}]}`)
	}))
	defer srv.Close()

	rules, err := newTestClient(srv).ListPriceRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}
