package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/config"
	"bagy2shopify/internal/export"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
	"bagy2shopify/internal/report"
	"bagy2shopify/internal/repository"
	"bagy2shopify/internal/sheet"
)

// go run ./cmd/export-products
// go run ./cmd/export-products -skip-xlsx
func main() {
	skipXLSX := flag.Bool("skip-xlsx", false, "Não gera a planilha, apenas o JSON")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao iniciar logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	observability.Start(cfg.MetricsPort, log)

	if err := cfg.RequireBagy(); err != nil {
		log.Fatal("configuração incompleta", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Iniciando exportação de produtos...")
	client := bagy.NewClient(cfg, log)
	records, fetchErr := client.FetchAll(ctx, bagy.Products)
	if fetchErr != nil {
		log.Error("exportação interrompida", zap.Error(fetchErr), zap.Int("collected", len(records)))
	}
	if len(records) == 0 {
		fmt.Println("Nenhum produto encontrado.")
		os.Exit(exitCode(fetchErr))
	}

	jsonPath := filepath.Join(cfg.ImportedDir, "produtos.json")
	if err := export.SaveJSON(jsonPath, records); err != nil {
		log.Fatal("falha ao salvar JSON", zap.Error(err))
	}
	files := []string{jsonPath}

	if !*skipXLSX {
		xlsxPath := filepath.Join(cfg.ImportedDir, "produtos_dooca.xlsx")
		table, err := export.ProductsTable(records)
		if err == nil {
			err = sheet.Write(xlsxPath, table)
		}
		if err != nil {
			log.Error("falha ao gerar planilha", zap.Error(err))
		} else {
			files = append(files, xlsxPath)
		}
	}

	if err := repository.StageRaw(ctx, cfg.DatabaseURL, "products", records, log); err != nil {
		log.Error("falha ao gravar staging", zap.Error(err))
	}

	r := report.New("EXPORTAÇÃO DE PRODUTOS").
		Section("RESUMO").
		Item("Produtos exportados", len(records)).
		Section("ARQUIVOS GERADOS")
	for _, f := range files {
		r.Linef("- %s", f)
	}
	r.Print(os.Stdout)
	os.Exit(exitCode(fetchErr))
}

func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
