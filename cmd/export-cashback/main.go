package main

import (
	"context"
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
	"bagy2shopify/internal/repository"
	"bagy2shopify/internal/sheet"
)

// go run ./cmd/export-cashback
func main() {
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

	fmt.Println("Iniciando exportação de saldos de cashback...")
	records, fetchErr := bagy.NewClient(cfg, log).FetchAll(ctx, bagy.Cashback)
	if fetchErr != nil {
		log.Error("exportação interrompida", zap.Error(fetchErr), zap.Int("collected", len(records)))
	}
	if len(records) == 0 {
		fmt.Println("Nenhum saldo encontrado.")
		if fetchErr != nil {
			os.Exit(1)
		}
		return
	}

	var (
		xlsxPath    = filepath.Join(cfg.ImportedDir, "cashback_saldos.xlsx")
		jsonPath    = filepath.Join(cfg.ImportedDir, "cashback_saldos.json")
		summaryPath = filepath.Join(cfg.ImportedDir, "cashback_saldos_summary.txt")
	)

	if err := export.SaveJSON(jsonPath, records); err != nil {
		log.Fatal("falha ao salvar JSON", zap.Error(err))
	}
	balances := bagy.Decode[bagy.CashbackBalance](records, func(i int, err error) {
		log.Warn("saldo ilegível", zap.Int("index", i+1), zap.Error(err))
	})
	if err := sheet.Write(xlsxPath, export.CashbackTable(balances)); err != nil {
		log.Fatal("falha ao gerar planilha", zap.Error(err))
	}

	if err := repository.StageRaw(ctx, cfg.DatabaseURL, "cashback", records, log); err != nil {
		log.Error("falha ao gravar staging", zap.Error(err))
	}

	summary := export.SummarizeCashback(balances).Report(xlsxPath, jsonPath, summaryPath)
	if err := summary.Save(summaryPath); err != nil {
		log.Error("falha ao salvar resumo", zap.Error(err))
	}
	summary.Print(os.Stdout)

	if fetchErr != nil {
		os.Exit(1)
	}
}
