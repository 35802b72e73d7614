package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"bagy2shopify/internal/config"
	"bagy2shopify/internal/coupon"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
	"bagy2shopify/internal/report"
	"bagy2shopify/internal/shopify"
)

// go run ./cmd/import-coupons -dry-run
// go run ./cmd/import-coupons -single
// go run ./cmd/import-coupons -list
func main() {
	input := flag.String("file", "", "Planilha de cupons (padrão: <IMPORTED_DIR>/cupons_dooca.xlsx)")
	dryRun := flag.Bool("dry-run", false, "Apenas mostra os payloads, sem chamar a API")
	single := flag.Bool("single", false, "Importa apenas o primeiro cupom")
	list := flag.Bool("list", false, "Lista as price rules existentes e sai")
	delay := flag.Duration("delay", 500*time.Millisecond, "Intervalo entre cupons")
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
		*input = filepath.Join(cfg.ImportedDir, "cupons_dooca.xlsx")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !*dryRun {
		if err := cfg.RequireShopify(); err != nil {
			log.Fatal("configuração incompleta", zap.Error(err))
		}
	}

	if *list {
		listPriceRules(ctx, shopify.NewClient(cfg, log), log)
		return
	}

	coupons, err := coupon.Load(*input)
	if err != nil {
		log.Fatal("falha ao ler planilha de cupons", zap.String("path", *input), zap.Error(err))
	}
	fmt.Printf("Cupons ativos encontrados: %d\n", len(coupons))
	if len(coupons) == 0 {
		return
	}
	if *single {
		coupons = coupons[:1]
	}

	if *dryRun {
		for i, c := range coupons {
			payload, err := json.MarshalIndent(map[string]any{"price_rule": c.PriceRule()}, "", "  ")
			if err != nil {
				log.Error("falha ao montar payload", zap.String("coupon", c.ID), zap.Error(err))
				continue
			}
			fmt.Printf("\n[%d/%d] %s (código %s)\n%s\n", i+1, len(coupons), c.Name, c.Code, payload)
		}
		return
	}

	im := coupon.NewImporter(shopify.NewClient(cfg, log), *delay, log)
	results := im.Import(ctx, coupons)

	latest, stamped, err := coupon.SaveResults(cfg.ImportedDir, results, time.Now())
	if err != nil {
		log.Error("falha ao salvar resultados", zap.Error(err))
	}

	ok, failed := coupon.Counts(results)
	r := report.New("IMPORTAÇÃO DE CUPONS").
		Section("RESUMO").
		Item("Execução", im.RunID).
		Item("Cupons processados", len(results)).
		Item("Importados com sucesso", ok).
		Item("Com erro", failed)
	if failed > 0 {
		r.Section("ERROS")
		for _, res := range results {
			if res.Status == coupon.StatusError {
				r.Linef("- %s (%s): %s", res.BagyCode, res.BagyID, res.Error)
			}
		}
	}
	if latest != "" {
		r.Section("ARQUIVOS GERADOS").Linef("- %s", latest).Linef("- %s", stamped)
	}
	r.Print(os.Stdout)
}

func listPriceRules(ctx context.Context, client *shopify.Client, log *zap.Logger) {
	rules, err := client.ListPriceRules(ctx)
	if err != nil {
		log.Fatal("falha ao listar price rules", zap.Error(err))
	}
	fmt.Printf("Price rules existentes: %d\n", len(rules))
	for i, rule := range rules {
		if i == 5 {
			break
		}
		fmt.Printf("- %s\n", rule.Title)
	}
}
