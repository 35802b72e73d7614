package redirect

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/bagy"
)

const base = "https://www.loja.com.br"

func TestLoadHandles(t *testing.T) {
	in := "\ufeffHandle,Title,Variant SKU\n" +
		"camiseta,Camiseta,CAM-P\n" +
		"camiseta,,CAM-M\n" +
		"camiseta,,\n" +
		",,ORFAO\n" +
		"camiseta-nova,,CAM-P\n" +
		"curta\n"
	handles, err := LoadHandles(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"CAM-P": "camiseta-nova", "CAM-M": "camiseta"}, handles)
}

func TestLoadHandlesMissingColumns(t *testing.T) {
	_, err := LoadHandles(strings.NewReader("Handle,SKU\na,b\n"))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRecord))
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/camiseta-azul", Path(base+"/camiseta-azul", base))
	assert.Equal(t, "/outra/rota", Path("https://cdn.outra.com/outra/rota?x=1", base))
	assert.Equal(t, "/p", Path("https://x.com/p", ""))
}

func products(t *testing.T) []bagy.Product {
	var ps []bagy.Product
	require.NoError(t, json.Unmarshal([]byte(`[
		{"name":"Camiseta","url":"`+base+`/camiseta","variations":[
			{"sku":"CAM-P","url":"`+base+`/camiseta?cor=azul"},
			{"sku":"CAM-M","url":""},
			{"sku":"CAM-G","url":""}
		]},
		{"name":"Bermuda","url":"`+base+`/bermuda","variations":[
			{"sku":"X"},
			{"sku":"BER-1"},
			{"sku":"BER-2"}
		]},
		{"name":"Boné","url":"`+base+`/bone","reference":"BONE"},
		{"name":"Sem URL","sku":"CAM-P"},
		{"name":"Meia","url":"`+base+`/meia","sku":"NADA"}
	]`), &ps))
	return ps
}

func TestBuild(t *testing.T) {
	handles := map[string]string{"CAM-P": "camiseta", "CAM-M": "camiseta", "CAM-G": "camiseta", "BER-1": "bermuda", "BER-2": "bermuda", "BONE": "bone"}
	rs := Build(products(t), handles, base)

	require.Len(t, rs, 4)
	assert.Equal(t, Redirect{From: "/camiseta?cor=azul", To: "/products/camiseta", SKU: "CAM-P", ProductName: "Camiseta", Source: SourceVariationURL}, rs[0])
	assert.Equal(t, Redirect{From: "/camiseta", To: "/products/camiseta", SKU: "CAM-M", ProductName: "Camiseta", Source: SourceProductURL}, rs[1])
	assert.Equal(t, "BER-1", rs[2].SKU)
	assert.Equal(t, SourceProductURL, rs[2].Source)
	assert.Equal(t, Redirect{From: "/bone", To: "/products/bone", SKU: "BONE", ProductName: "Boné", Source: SourceProductDirect}, rs[3])
}

func TestWriteImportCSVDedupes(t *testing.T) {
	rs := []Redirect{
		{From: "/a", To: "/products/a"},
		{From: "/b", To: "/products/b"},
		{From: "/a", To: "/products/other"},
	}
	var buf bytes.Buffer
	n, err := WriteImportCSV(&buf, rs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Redirect from,Redirect to\n/a,/products/a\n/b,/products/b\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteDetailedCSV(&buf, rs))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))
}

func TestSummary(t *testing.T) {
	rs := []Redirect{{Source: SourceVariationURL}, {Source: SourceProductURL}, {Source: SourceVariationURL}}
	text := Summary(rs, 10, 30, "converted/redirects_301.csv").String()
	assert.Contains(t, text, "Total de redirects criados: 3")
	assert.Contains(t, text, "- URLs de variações: 2")
	assert.Contains(t, text, "- URLs principais de produto: 1")
	assert.Less(t, strings.Index(text, "variações"), strings.Index(text, "principais"))
	assert.Contains(t, text, "- converted/redirects_301.csv")
}
