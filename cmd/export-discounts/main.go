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

// go run ./cmd/export-discounts
func main() {
	output := flag.String("output", "", "Arquivo XLSX de saída (padrão: <IMPORTED_DIR>/cupons_dooca.xlsx)")
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
	path := *output
	if path == "" {
		path = filepath.Join(cfg.ImportedDir, "cupons_dooca.xlsx")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Iniciando exportação de cupons...")
	records, fetchErr := bagy.NewClient(cfg, log).FetchAll(ctx, bagy.Discounts)
	if fetchErr != nil {
		log.Error("exportação interrompida", zap.Error(fetchErr), zap.Int("collected", len(records)))
	}
	if len(records) == 0 {
		fmt.Println("Nenhum cupom encontrado.")
		if fetchErr != nil {
			os.Exit(1)
		}
		return
	}

	discounts := bagy.Decode[bagy.Discount](records, func(i int, err error) {
		log.Warn("cupom ilegível", zap.Int("index", i+1), zap.Error(err))
	})
	if err := sheet.Write(path, export.DiscountsTable(discounts)); err != nil {
		log.Fatal("falha ao gerar planilha", zap.Error(err))
	}

	if err := repository.StageRaw(ctx, cfg.DatabaseURL, "discounts", records, log); err != nil {
		log.Error("falha ao gravar staging", zap.Error(err))
	}

	report.New("EXPORTAÇÃO DE CUPONS").
		Section("RESUMO").
		Item("Registros recebidos", len(records)).
		Item("Cupons exportados", len(discounts)).
		Section("ARQUIVOS GERADOS").
		Linef("- %s", path).
		Print(os.Stdout)

	if fetchErr != nil {
		os.Exit(1)
	}
}
