package redirect

import (
	"encoding/csv"
	"io"

	"bagy2shopify/internal/report"
)

// WriteImportCSV writes the two column file the target admin imports,
// one line per distinct source path.
func WriteImportCSV(w io.Writer, rs []Redirect) (int, error) {
	rs = Dedupe(rs)
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Redirect from", "Redirect to"}); err != nil {
		return 0, err
	}
	for _, r := range rs {
		if err := cw.Write([]string{r.From, r.To}); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(rs), cw.Error()
}

// WriteDetailedCSV writes every redirect with its SKU, product and origin.
func WriteDetailedCSV(w io.Writer, rs []Redirect) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"redirect_from", "redirect_to", "sku", "product_name", "source"}); err != nil {
		return err
	}
	for _, r := range rs {
		if err := cw.Write([]string{r.From, r.To, r.SKU, r.ProductName, r.Source}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var sourceNames = map[string]string{
	SourceVariationURL:  "URLs de variações",
	SourceProductURL:    "URLs principais de produto",
	SourceProductDirect: "Produtos sem variações",
}

// Summary reports counts per source in order of first appearance.
func Summary(rs []Redirect, products, skus int, files ...string) *report.Report {
	r := report.New("RELATÓRIO DE CRIAÇÃO DE REDIRECTS").
		Section("TOTAIS").
		Item("Total de produtos da Bagy", products).
		Item("Total de SKUs do Shopify", skus).
		Item("Total de redirects criados", len(rs)).
		Section("Redirects por fonte")

	counts := make(map[string]int)
	var order []string
	for _, rd := range rs {
		if counts[rd.Source] == 0 {
			order = append(order, rd.Source)
		}
		counts[rd.Source]++
	}
	for _, s := range order {
		name := sourceNames[s]
		if name == "" {
			name = s
		}
		r.Linef("- %s: %d", name, counts[s])
	}

	if len(files) > 0 {
		r.Section("Arquivos gerados")
		for _, f := range files {
			r.Linef("- %s", f)
		}
	}
	return r
}
