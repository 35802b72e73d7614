package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagy2shopify/internal/bagy"
)

func raws(docs ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = json.RawMessage(d)
	}
	return out
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imported", "produtos.json")
	records := raws(`{"id":1,"name":"Calça <Jeans>"}`, `{"id":2,"name":"Ação"}`)
	require.NoError(t, SaveJSON(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Calça <Jeans>")
	assert.Contains(t, string(data), "\n  {")

	loaded, err := LoadJSON(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.JSONEq(t, string(records[1]), string(loaded[1]))
}

func TestLoadJSONRejectsNonList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":[]}`), 0o644))
	_, err := LoadJSON(path)
	assert.Error(t, err)

	_, err = LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestProductsTableKeepsKeyOrder(t *testing.T) {
	table, err := ProductsTable(raws(
		`{"name":"Boné","id":7,"active":true,"brand":{"id":1, "name":"X"},"images":[],"price":null}`,
		`{"id":8,"name":"Meia","extra":"ignored"}`,
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id", "active", "brand", "images", "price"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []any{"Boné", float64(7), true, `{"id":1,"name":"X"}`, "[]", ""}, table.Rows[0])
	assert.Equal(t, []any{"Meia", float64(8), "", "", "", ""}, table.Rows[1])
}

func TestProductsTableEmptyAndInvalid(t *testing.T) {
	table, err := ProductsTable(nil)
	require.NoError(t, err)
	assert.Empty(t, table.Header)

	_, err = ProductsTable(raws(`[1,2]`))
	assert.Error(t, err)
}

func TestCustomersTable(t *testing.T) {
	var customers []bagy.Customer
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":10,"name":"Ana","email":"ana@example.com","cgc":"123","phone":11999,"address":{"city":"Recife","zipcode":50000,"number":"12B"}},
		{"id":"11","name":"Bruno","address":null}
	]`), &customers))

	table := CustomersTable(customers)
	assert.Len(t, table.Header, 14)
	assert.Equal(t, []any{"10", "Ana", "ana@example.com", "123", "11999", "", "", "Recife", "", "50000", "", "12B", "", ""}, table.Rows[0])
	assert.Equal(t, "11", table.Rows[1][0])
	assert.Equal(t, "", table.Rows[1][7])
}

func TestDiscountsTable(t *testing.T) {
	var discounts []bagy.Discount
	require.NoError(t, json.Unmarshal([]byte(`[{"id":3,"name":"Dez","code":"DEZ","value":"10.5","value_type":"percentage","single_usage":1,"active":"1","entitled_product_ids":[1,"2",3]}]`), &discounts))

	table := DiscountsTable(discounts)
	require.Len(t, table.Header, 29)
	row := table.Rows[0]
	require.Len(t, row, 29)
	assert.Equal(t, "DEZ", row[2])
	assert.Equal(t, true, row[5])
	assert.Equal(t, "10.5", row[13])
	assert.Equal(t, "1, 2, 3", row[25])
	assert.Equal(t, true, row[28])
}

func TestSummarizeCashback(t *testing.T) {
	var balances []bagy.CashbackBalance
	require.NoError(t, json.Unmarshal([]byte(`[
		{"customer_id":1,"balance":10.5},
		{"customer_id":2,"balance":0},
		{"customer_id":3,"balance":"4.5"},
		{"customer_id":4,"balance":null},
		{"customer_id":5,"balance":30}
	]`), &balances))

	s := SummarizeCashback(balances)
	assert.Equal(t, 5, s.Customers)
	assert.Equal(t, 3, s.WithBalance)
	assert.Equal(t, 2, s.ZeroBalance)
	assert.Equal(t, "45.00", s.Total.StringFixed(2))
	assert.Equal(t, "15.00", s.Average.StringFixed(2))
	assert.Equal(t, "30.00", s.Max.StringFixed(2))
	assert.Equal(t, "4.50", s.Min.StringFixed(2))

	text := s.Report("imported/cashback_saldos.xlsx").String()
	assert.Contains(t, text, "Saldo médio: R$ 15.00")
	assert.Contains(t, text, "- imported/cashback_saldos.xlsx")
}

func TestSummarizeCashbackWithoutPositive(t *testing.T) {
	s := SummarizeCashback(nil)
	assert.Equal(t, 0, s.WithBalance)
	assert.Equal(t, "0.00", s.Average.StringFixed(2))
	assert.Equal(t, "0.00", s.Min.StringFixed(2))
}

func TestCashbackTable(t *testing.T) {
	rows := CashbackTable([]bagy.CashbackBalance{{CustomerID: "9", Balance: bagy.ParseAmount("12.3"), NextExpiration: "2025-01-01 00:00:00"}}).Rows
	assert.Equal(t, []any{"9", 12.3, "2025-01-01 00:00:00", ""}, rows[0])
}
