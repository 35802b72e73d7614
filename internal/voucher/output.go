package voucher

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bagy2shopify/internal/report"
	"bagy2shopify/internal/sheet"
)

var tableHeader = []string{
	"Código do Voucher", "Email do Cliente", "Nome do Cliente", "Valor (R$)", "Validade",
	"Status", "Restrição", "Price Rule ID", "Shopify Customer ID", "Data de Criação",
}

// Table lays out vouchers for the exported spreadsheet.
func Table(vouchers []Voucher, now time.Time) sheet.Table {
	t := sheet.Table{Name: "Vouchers", Header: tableHeader, Widths: make([]float64, len(tableHeader))}
	created := now.Format("02/01/2006 15:04")
	for _, v := range vouchers {
		value, _ := v.Balance.Round(2).Float64()
		t.Rows = append(t.Rows, []any{
			v.Code, v.CustomerEmail, v.CustomerName, value, DisplayDate(v.Expiration),
			statusLabel(v), restrictionLabel(v), formatID(v.PriceRuleID), formatID(v.ShopifyCustomerID), created,
		})
	}
	for i, h := range tableHeader {
		t.Widths[i] = columnWidth(h, t.Rows, i)
	}
	return t
}

// columnWidth fits the longest value plus padding, capped at 50.
func columnWidth(header string, rows [][]any, col int) float64 {
	longest := len([]rune(header))
	for _, r := range rows {
		if n := len([]rune(fmt.Sprint(r[col]))); n > longest {
			longest = n
		}
	}
	return float64(min(longest+2, 50))
}

func statusLabel(v Voucher) string {
	if v.Status == StatusCreated {
		return "Criado no Shopify"
	}
	return "Teste"
}

func restrictionLabel(v Voucher) string {
	if v.Restricted() {
		return "Restrito ao cliente"
	}
	return "Uso geral"
}

// Report summarizes a run. shop is shown when vouchers were created.
func (r Result) Report(testMode bool, shop string) *report.Report {
	rep := report.New("RELATÓRIO FINAL - VOUCHERS PROCESSADOS").
		Section("RESUMO").
		Item("Total de vouchers", len(r.Vouchers)).
		Item("Valor total", "R$ "+r.Total.StringFixed(2))
	avg := decimal.Zero
	if n := len(r.Vouchers); n > 0 {
		avg = r.Total.Div(decimal.NewFromInt(int64(n)))
	}
	rep.Item("Valor médio", "R$ "+avg.StringFixed(2)).
		Item("Clientes não encontrados", r.Skipped).
		Item("Falhas", r.Failed)

	if testMode {
		rep.Linef("Modo teste: vouchers não criados no Shopify")
	} else {
		restricted := 0
		created := 0
		for _, v := range r.Vouchers {
			if v.Restricted() {
				restricted++
			}
			if v.Status == StatusCreated {
				created++
			}
		}
		rep.Item("Criados no Shopify", created).
			Item("Restritos ao cliente", restricted).
			Item("Uso geral", len(r.Vouchers)-restricted).
			Item("Loja", shop)
	}
	if r.PermissionDenied {
		rep.Linef("Token sem permissão write_price_rules: aprove o escopo no app da loja")
	}

	if len(r.Vouchers) > 0 {
		rep.Section("LISTA DETALHADA")
		for i, v := range r.Vouchers {
			rep.Linef("%2d. %s | %s | %s | R$ %s | %s", i+1, v.Code, v.CustomerName, v.CustomerEmail, v.Balance.StringFixed(2), restrictionLabel(v))
		}
	}
	return rep
}
