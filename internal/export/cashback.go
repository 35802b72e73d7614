package export

import (
	"github.com/shopspring/decimal"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/report"
	"bagy2shopify/internal/sheet"
)

var cashbackHeader = []string{"Customer ID", "Saldo (R$)", "Próxima Expiração", "Próxima Liberação"}

func CashbackTable(balances []bagy.CashbackBalance) sheet.Table {
	t := sheet.Table{Name: "Saldos Cashback", Header: cashbackHeader}
	for _, b := range balances {
		t.Rows = append(t.Rows, []any{
			b.CustomerID.String(), b.Balance.Float64(), b.NextExpiration.String(), b.NextRelease.String(),
		})
	}
	return t
}

// CashbackSummary holds the balance statistics. Average, Max and Min only
// consider positive balances and are zero when there are none.
type CashbackSummary struct {
	Customers   int
	WithBalance int
	ZeroBalance int
	Total       decimal.Decimal
	Average     decimal.Decimal
	Max         decimal.Decimal
	Min         decimal.Decimal
}

func SummarizeCashback(balances []bagy.CashbackBalance) CashbackSummary {
	s := CashbackSummary{Customers: len(balances)}
	for _, b := range balances {
		v := b.Balance.Value
		if !b.Balance.Valid {
			v = decimal.Zero
		}
		s.Total = s.Total.Add(v)
		if !v.IsPositive() {
			continue
		}
		if s.WithBalance == 0 || v.GreaterThan(s.Max) {
			s.Max = v
		}
		if s.WithBalance == 0 || v.LessThan(s.Min) {
			s.Min = v
		}
		s.Average = s.Average.Add(v)
		s.WithBalance++
	}
	s.ZeroBalance = s.Customers - s.WithBalance
	if s.WithBalance > 0 {
		s.Average = s.Average.Div(decimal.NewFromInt(int64(s.WithBalance)))
	}
	return s
}

// Report renders the summary; files lists the generated outputs.
func (s CashbackSummary) Report(files ...string) *report.Report {
	r := report.New("RELATÓRIO DE SALDOS CASHBACK").
		Section("RESUMO GERAL").
		Item("Total de clientes", s.Customers).
		Item("Clientes com saldo", s.WithBalance).
		Item("Clientes com saldo zero", s.ZeroBalance).
		Item("Saldo total", "R$ "+s.Total.StringFixed(2)).
		Section("ESTATÍSTICAS DOS SALDOS").
		Item("Saldo médio", "R$ "+s.Average.StringFixed(2)).
		Item("Maior saldo", "R$ "+s.Max.StringFixed(2)).
		Item("Menor saldo", "R$ "+s.Min.StringFixed(2))
	if len(files) > 0 {
		r.Section("ARQUIVOS GERADOS")
		for _, f := range files {
			r.Linef("- %s", f)
		}
	}
	return r
}
