// Package redirect maps old storefront URLs to the new product pages by SKU.
package redirect

import (
	"encoding/csv"
	"errors"
	"io"
	"net/url"
	"os"
	"strings"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/bagy"
)

const (
	SourceVariationURL  = "variation_url"
	SourceProductURL    = "product_url"
	SourceProductDirect = "product_direct"
)

type Redirect struct {
	From        string
	To          string
	SKU         string
	ProductName string
	Source      string
}

var errMissingColumns = errors.New(`colunas "Handle" e "Variant SKU" não encontradas`)

// LoadHandles reads a products export CSV into a SKU -> handle map. Rows
// without SKU or handle are ignored; a later row wins for a repeated SKU.
func LoadHandles(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, apperr.New(apperr.KindRecord, "CSV de produtos vazio", err)
	}
	handleCol, skuCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case "Handle":
			handleCol = i
		case "Variant SKU":
			skuCol = i
		}
	}
	if handleCol < 0 || skuCol < 0 {
		return nil, apperr.New(apperr.KindRecord, "CSV de produtos inválido", errMissingColumns)
	}

	handles := make(map[string]string)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return handles, apperr.New(apperr.KindRecord, "linha inválida no CSV de produtos", err)
		}
		if handleCol >= len(rec) || skuCol >= len(rec) {
			continue
		}
		sku, handle := strings.TrimSpace(rec[skuCol]), strings.TrimSpace(rec[handleCol])
		if sku != "" && handle != "" {
			handles[sku] = handle
		}
	}
	return handles, nil
}

func LoadHandlesFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.New(apperr.KindSink, "arquivo "+path+" não encontrado", err)
	}
	defer f.Close()
	return LoadHandles(f)
}

// Path returns the part of rawURL after base, or the URL path when rawURL
// is on another host.
func Path(rawURL, base string) string {
	if base != "" && strings.HasPrefix(rawURL, base) {
		return strings.TrimPrefix(rawURL, base)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}

// Build walks the products in order and emits one redirect per variation
// URL whose SKU is known; a product whose variations have no own URL gets
// its product URL redirected once. Products without variations match on
// sku, then reference.
func Build(products []bagy.Product, handles map[string]string, base string) []Redirect {
	var out []Redirect
	seen := make(map[string]bool)

	for _, p := range products {
		if p.URL == "" {
			continue
		}
		productPath := Path(p.URL, base)

		if len(p.Variations) == 0 {
			sku := p.SKU
			if sku == "" {
				sku = p.Reference
			}
			handle, ok := handles[sku]
			if sku == "" || !ok || seen[p.URL] {
				continue
			}
			out = append(out, Redirect{From: productPath, To: target(handle), SKU: sku, ProductName: p.Name, Source: SourceProductDirect})
			seen[p.URL] = true
			continue
		}

		for _, v := range p.Variations {
			handle, ok := handles[v.SKU]
			if v.SKU == "" || !ok {
				continue
			}
			if v.URL != "" && !seen[v.URL] {
				out = append(out, Redirect{From: Path(v.URL, base), To: target(handle), SKU: v.SKU, ProductName: p.Name, Source: SourceVariationURL})
				seen[v.URL] = true
			} else if !seen[p.URL] {
				out = append(out, Redirect{From: productPath, To: target(handle), SKU: v.SKU, ProductName: p.Name, Source: SourceProductURL})
				seen[p.URL] = true
				break
			}
		}
	}
	return out
}

func target(handle string) string {
	return "/products/" + handle
}

// Dedupe keeps the first redirect for each source path.
func Dedupe(rs []Redirect) []Redirect {
	seen := make(map[string]bool, len(rs))
	out := make([]Redirect, 0, len(rs))
	for _, r := range rs {
		if seen[r.From] {
			continue
		}
		seen[r.From] = true
		out = append(out, r)
	}
	return out
}
