package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/config"
	"bagy2shopify/internal/db"
	"bagy2shopify/internal/export"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/match"
	"bagy2shopify/internal/model"
	"bagy2shopify/internal/observability"
	"bagy2shopify/internal/report"
	"bagy2shopify/internal/repository"
	"bagy2shopify/internal/sheet"
	"bagy2shopify/internal/shopify"
)

var matchHeader = []string{"ID Shopify", "ID Bagy", "Título Shopify", "Nome Bagy", "URL Shopify", "URL Bagy", "Similaridade"}

// go run ./cmd/compare-products
// go run ./cmd/compare-products -threshold=0.8
func main() {
	threshold := flag.Float64("threshold", match.DefaultThreshold, "Similaridade mínima para aceitar uma correspondência")
	input := flag.String("input", "", "Snapshot JSON de produtos (padrão: <IMPORTED_DIR>/produtos.json)")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao iniciar logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	observability.Start(cfg.MetricsPort, log)

	if err := cfg.RequireShopify(); err != nil {
		log.Fatal("configuração incompleta", zap.Error(err))
	}
	if *input == "" {
		*input = filepath.Join(cfg.ImportedDir, "produtos.json")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := export.LoadJSON(*input)
	if err != nil {
		log.Fatal("falha ao ler snapshot de produtos", zap.String("path", *input), zap.Error(err))
	}
	sources := bagyItems(records, log)
	fmt.Printf("Produtos válidos carregados da Bagy: %d\n", len(sources))

	fmt.Println("=== COMPARAÇÃO DE PRODUTOS SHOPIFY x BAGY ===")
	products, err := shopify.NewClient(cfg, log).ListProducts(ctx)
	if err != nil {
		log.Error("listagem da Shopify interrompida", zap.Error(err), zap.Int("collected", len(products)))
	}
	fmt.Printf("Total de produtos encontrados na Shopify: %d\n", len(products))
	if len(products) == 0 || len(sources) == 0 {
		log.Fatal("não foi possível carregar os produtos")
	}

	targets := make([]match.Item, 0, len(products))
	for _, p := range products {
		targets = append(targets, match.Item{
			ID:   strconv.FormatInt(p.ID, 10),
			Name: p.Title,
			URL:  fmt.Sprintf("https://%s/products/%s", cfg.ShopifyShopDomain, p.Handle),
		})
	}

	fmt.Printf("Comparando produtos (similaridade mínima: %.2f)...\n", *threshold)
	pairs := match.NewMatcher(*threshold, log).Match(targets, sources)
	if len(pairs) == 0 {
		fmt.Println("Nenhuma correspondência encontrada")
		return
	}

	path := filepath.Join(cfg.ConvertedDir, "correspondencias_shopify_bagy.xlsx")
	if err := sheet.Write(path, matchTable(pairs)); err != nil {
		log.Fatal("falha ao gerar planilha", zap.Error(err))
	}

	if cfg.DatabaseURL != "" {
		if err := storeMatches(ctx, cfg.DatabaseURL, pairs, log); err != nil {
			log.Error("falha ao gravar correspondências", zap.Error(err))
		}
	}

	report.New("COMPARAÇÃO SHOPIFY x BAGY").
		Section("RESUMO").
		Item("Produtos Shopify", len(products)).
		Item("Produtos Bagy", len(sources)).
		Item("Correspondências encontradas", len(pairs)).
		Section("ARQUIVOS GERADOS").
		Linef("- %s", path).
		Print(os.Stdout)
}

// bagyItems keeps snapshot products that have both a name and an id.
func bagyItems(records []json.RawMessage, log *zap.Logger) []match.Item {
	var items []match.Item
	for _, p := range bagy.Decode[bagy.Product](records, func(i int, err error) {
		log.Warn("produto ilegível", zap.Int("index", i+1), zap.Error(err))
	}) {
		if p.Name == "" || p.ID == "" {
			continue
		}
		items = append(items, match.Item{ID: p.ID.String(), Name: p.Name, URL: p.URL})
	}
	return items
}

func matchTable(pairs []match.Pair) sheet.Table {
	rows := make([][]any, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []any{
			p.Target.ID, p.Source.ID, p.Target.Name, p.Source.Name,
			p.Target.URL, p.Source.URL, fmt.Sprintf("%.2f", p.Score),
		})
	}
	return sheet.Table{
		Name:   "Correspondências Shopify x Bagy",
		Header: matchHeader,
		Rows:   rows,
		Widths: []float64{15, 15, 40, 40, 60, 60, 12},
		Styled: true,
	}
}

func storeMatches(ctx context.Context, url string, pairs []match.Pair, log *zap.Logger) error {
	pool, err := db.NewPool(ctx, url)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := &repository.MatchRepository{DB: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	matches := make([]model.CatalogMatch, 0, len(pairs))
	for _, p := range pairs {
		matches = append(matches, model.CatalogMatch{
			ShopifyID:    p.Target.ID,
			BagyID:       p.Source.ID,
			ShopifyTitle: p.Target.Name,
			BagyName:     p.Source.Name,
			Similarity:   p.Score,
			ShopifyURL:   p.Target.URL,
			BagyURL:      p.Source.URL,
		})
	}
	n, err := repo.SaveAll(ctx, matches, time.Now())
	log.Info("correspondências gravadas", zap.Int("saved", n), zap.Int("total", len(matches)))
	return err
}
