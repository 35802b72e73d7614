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

// go run ./cmd/export-customers
func main() {
	output := flag.String("output", "", "Arquivo XLSX de saída (padrão: <IMPORTED_DIR>/clientes_dooca.xlsx)")
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
		path = filepath.Join(cfg.ImportedDir, "clientes_dooca.xlsx")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Iniciando exportação de clientes...")
	records, fetchErr := bagy.NewClient(cfg, log).FetchAll(ctx, bagy.Customers)
	if fetchErr != nil {
		log.Error("exportação interrompida", zap.Error(fetchErr), zap.Int("collected", len(records)))
	}
	if len(records) == 0 {
		fmt.Println("Nenhum cliente encontrado.")
		if fetchErr != nil {
			os.Exit(1)
		}
		return
	}

	customers := bagy.Decode[bagy.Customer](records, func(i int, err error) {
		log.Warn("cliente ilegível", zap.Int("index", i+1), zap.Error(err))
	})
	if err := sheet.Write(path, export.CustomersTable(customers)); err != nil {
		log.Fatal("falha ao gerar planilha", zap.Error(err))
	}

	if err := repository.StageRaw(ctx, cfg.DatabaseURL, "customers", records, log); err != nil {
		log.Error("falha ao gravar staging", zap.Error(err))
	}

	report.New("EXPORTAÇÃO DE CLIENTES").
		Section("RESUMO").
		Item("Registros recebidos", len(records)).
		Item("Clientes exportados", len(customers)).
		Section("ARQUIVOS GERADOS").
		Linef("- %s", path).
		Print(os.Stdout)

	if fetchErr != nil {
		os.Exit(1)
	}
}
