package coupon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagy2shopify/internal/export"
	"bagy2shopify/internal/sheet"
	"bagy2shopify/internal/shopify"
)

func TestCodeFromName(t *testing.T) {
	assert.Equal(t, "BLACKFRIDAY10", CodeFromName("Black Friday 10%", "1"))
	assert.Equal(t, "PROMOÇÃODEVERÃO", CodeFromName("Promoção de Verão!", "2"))
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRST", CodeFromName("abcdefghij klmnopqrst uvwxyz", "3"))
	assert.Equal(t, "CUPOM42", CodeFromName("%%% !!", "42"))
}

func TestPriceRuleMapping(t *testing.T) {
	c := FromRecord(sheet.Record{
		"id":                   "7",
		"name":                 "Dez por cento",
		"codes":                "",
		"value_type":           "percentage",
		"value":                "10",
		"single_usage":         "TRUE",
		"usage_limit":          "0",
		"min_purchase":         "150.5",
		"min_quantity":         "2",
		"date_from":            "2024-11-01 00:00:00",
		"date_to":              "",
		"entitled_product_ids": "11, 12,,13",
	})
	assert.Equal(t, "DEZPORCENTO", c.Code)

	rule := c.PriceRule()
	assert.Equal(t, "Dez por cento", rule.Title)
	assert.Equal(t, "line_item", rule.TargetType)
	assert.Equal(t, "across", rule.AllocationMethod)
	assert.Equal(t, shopify.ValuePercentage, rule.ValueType)
	assert.Equal(t, "-10", rule.Value)
	assert.True(t, rule.OncePerCustomer)
	assert.Nil(t, rule.UsageLimit)
	require.NotNil(t, rule.PrerequisiteSubtotalRange)
	assert.Equal(t, "150.5", rule.PrerequisiteSubtotalRange.GreaterThanOrEqualTo)
	require.NotNil(t, rule.PrerequisiteQuantityRange)
	assert.Equal(t, 2, rule.PrerequisiteQuantityRange.GreaterThanOrEqualTo)
	assert.Equal(t, []json.Number{"11", "12", "13"}, rule.EntitledProductIDs)
	assert.Nil(t, rule.PrerequisiteProductIDs)

	payload, err := json.Marshal(rule)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"usage_limit":null`)
	assert.NotContains(t, string(payload), `"ends_at"`)
}

func TestPriceRuleFixedAmount(t *testing.T) {
	rule := FromRecord(sheet.Record{"name": "Vinte", "codes": "VINTE", "value_type": "absolute", "value": "20,00", "usage_limit": "5"}).PriceRule()
	assert.Equal(t, shopify.ValueFixedAmount, rule.ValueType)
	assert.Equal(t, "-20", rule.Value)
	require.NotNil(t, rule.UsageLimit)
	assert.Equal(t, 5, *rule.UsageLimit)
	assert.Nil(t, rule.PrerequisiteSubtotalRange)
}

func TestLoadKeepsActiveRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cupons.xlsx")
	table := sheet.Table{Header: export.DiscountHeader}
	row := func(id, name, code string, active bool) []any {
		r := make([]any, len(export.DiscountHeader))
		r[0], r[1], r[2], r[28] = id, name, code, active
		return r
	}
	table.Rows = [][]any{row("1", "Ativo", "ATIVO", true), row("2", "Inativo", "X", false), row("3", "Sem Código", "", true)}
	require.NoError(t, sheet.Write(path, table))

	coupons, err := Load(path)
	require.NoError(t, err)
	require.Len(t, coupons, 2)
	assert.Equal(t, "ATIVO", coupons[0].Code)
	assert.Equal(t, "SEMCÓDIGO", coupons[1].Code)
}

type fakeAPI struct {
	rules    []shopify.PriceRule
	codes    []string
	failRule map[string]error
	failCode map[string]error
}

func (f *fakeAPI) CreatePriceRule(_ context.Context, rule shopify.PriceRule) (*shopify.PriceRule, error) {
	if err := f.failRule[rule.Title]; err != nil {
		return nil, err
	}
	f.rules = append(f.rules, rule)
	rule.ID = int64(100 + len(f.rules))
	return &rule, nil
}

func (f *fakeAPI) CreateDiscountCode(_ context.Context, id int64, code string) (*shopify.DiscountCode, error) {
	if err := f.failCode[code]; err != nil {
		return nil, err
	}
	f.codes = append(f.codes, code)
	return &shopify.DiscountCode{ID: int64(len(f.codes)), PriceRuleID: id, Code: code}, nil
}

func TestImportRecordsEachOutcome(t *testing.T) {
	api := &fakeAPI{
		failRule: map[string]error{"Quebrado": shopify.ErrUnexpectedStatus},
		failCode: map[string]error{"DUP": errors.New("code taken")},
	}
	var out bytes.Buffer
	im := &Importer{API: api, Out: &out, RunID: "run-1"}

	results := im.Import(context.Background(), []Coupon{
		{ID: "1", Name: "Bom", Code: "BOM"},
		{ID: "2", Name: "Quebrado", Code: "QB"},
		{ID: "3", Name: "Duplicado", Code: "DUP"},
	})
	require.Len(t, results, 3)

	assert.Equal(t, Result{RunID: "run-1", BagyID: "1", BagyCode: "BOM", PriceRuleID: 101, DiscountCodeID: 1, Status: StatusSuccess}, results[0])
	assert.Equal(t, StatusError, results[1].Status)
	assert.Contains(t, results[1].Error, "price rule")
	assert.Equal(t, StatusError, results[2].Status)
	assert.Equal(t, int64(102), results[2].PriceRuleID)
	assert.Contains(t, results[2].Error, "código de desconto")

	ok, failed := Counts(results)
	assert.Equal(t, 1, ok)
	assert.Equal(t, 2, failed)
	assert.Contains(t, out.String(), "[2/3] Processando cupom: Quebrado - Código: QB")
}

func TestImportStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	im := &Importer{API: &fakeAPI{}, Delay: time.Hour}
	results := im.Import(ctx, []Coupon{{Name: "a"}, {Name: "b"}})
	assert.Len(t, results, 1)
}

func TestSaveResults(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 11, 29, 8, 30, 5, 0, time.UTC)
	latest, stamped, err := SaveResults(dir, []Result{{BagyID: "1", Status: StatusSuccess}}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "import_results.json"), latest)
	assert.Equal(t, filepath.Join(dir, "import_results_20241129_083005.json"), stamped)

	a, err := os.ReadFile(latest)
	require.NoError(t, err)
	b, err := os.ReadFile(stamped)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var back []Result
	require.NoError(t, json.Unmarshal(a, &back))
	assert.Equal(t, "1", back[0].BagyID)
}
