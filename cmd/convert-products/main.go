package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"bagy2shopify/internal/config"
	"bagy2shopify/internal/convert"
	"bagy2shopify/internal/export"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
	"bagy2shopify/internal/report"
)

// go run ./cmd/convert-products
// go run ./cmd/convert-products -limit=20
func main() {
	input := flag.String("input", "", "Snapshot JSON de produtos (padrão: <IMPORTED_DIR>/produtos.json)")
	output := flag.String("output", "", "CSV de saída (padrão: <CONVERTED_DIR>/produtos_shopify_completo.csv)")
	limit := flag.Int("limit", 0, "Número máximo de produtos convertidos (0 = todos)")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao iniciar logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	observability.Start(cfg.MetricsPort, log)

	if *input == "" {
		*input = filepath.Join(cfg.ImportedDir, "produtos.json")
	}
	if *output == "" {
		*output = filepath.Join(cfg.ConvertedDir, "produtos_shopify_completo.csv")
	}

	records, err := export.LoadJSON(*input)
	if err != nil {
		log.Fatal("falha ao ler snapshot de produtos", zap.String("path", *input), zap.Error(err))
	}
	fmt.Printf("Carregados %d produtos de %s\n", len(records), *input)

	conv := convert.NewConverter(log)
	conv.MaxProducts = *limit
	rep := conv.ConvertRaw(records)

	if err := writeCSV(*output, rep.Rows); err != nil {
		log.Fatal("falha ao gravar CSV", zap.String("path", *output), zap.Error(err))
	}

	r := report.New("CONVERSÃO BAGY → SHOPIFY").
		Section("RESUMO").
		Item("Produtos no snapshot", rep.Total).
		Item("Produtos sem nome", rep.Invalid).
		Item("Produtos convertidos", rep.Processed).
		Item("Produtos com erro", rep.Failed).
		Item("Handles renomeados", rep.Renamed).
		Item("Linhas geradas", len(rep.Rows))
	if len(rep.Skipped) > 0 {
		r.Section("ERROS")
		for _, s := range rep.Skipped {
			r.Linef("- #%d %s: %v", s.Index+1, s.Product, s.Err)
		}
	}
	r.Section("ARQUIVOS GERADOS").Linef("- %s", *output)
	r.Print(os.Stdout)
}

func writeCSV(path string, rows []convert.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := convert.WriteCSV(w, rows); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
