package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/config"
	"bagy2shopify/internal/export"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
	"bagy2shopify/internal/redirect"
)

// go run ./cmd/generate-redirects
// go run ./cmd/generate-redirects -shopify-csv=imported/products_export_1.csv
func main() {
	productsPath := flag.String("products", "", "Snapshot JSON de produtos (padrão: <IMPORTED_DIR>/produtos.json)")
	exportPath := flag.String("shopify-csv", "", "Exportação de produtos da Shopify (padrão: <IMPORTED_DIR>/products_export_1.csv)")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao iniciar logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	observability.Start(cfg.MetricsPort, log)

	if *productsPath == "" {
		*productsPath = filepath.Join(cfg.ImportedDir, "produtos.json")
	}
	if *exportPath == "" {
		*exportPath = filepath.Join(cfg.ImportedDir, "products_export_1.csv")
	}

	records, err := export.LoadJSON(*productsPath)
	if err != nil {
		log.Fatal("falha ao ler snapshot de produtos", zap.String("path", *productsPath), zap.Error(err))
	}
	products := bagy.Decode[bagy.Product](records, func(i int, err error) {
		log.Warn("produto ilegível", zap.Int("index", i+1), zap.Error(err))
	})
	handles, err := redirect.LoadHandlesFile(*exportPath)
	if err != nil {
		log.Fatal("falha ao ler exportação da Shopify", zap.String("path", *exportPath), zap.Error(err))
	}
	fmt.Printf("Produtos da Bagy: %d | SKUs do Shopify: %d\n", len(products), len(handles))

	redirects := redirect.Build(products, handles, cfg.StoreBaseURL)

	var (
		importPath   = filepath.Join(cfg.ConvertedDir, "redirects_301.csv")
		detailedPath = filepath.Join(cfg.ConvertedDir, "redirects_detailed_report.csv")
		summaryPath  = filepath.Join(cfg.ConvertedDir, "redirects_summary.txt")
	)

	var written int
	err = writeFile(importPath, func(w io.Writer) error {
		n, err := redirect.WriteImportCSV(w, redirects)
		written = n
		return err
	})
	if err != nil {
		log.Fatal("falha ao gravar redirects", zap.String("path", importPath), zap.Error(err))
	}
	err = writeFile(detailedPath, func(w io.Writer) error {
		return redirect.WriteDetailedCSV(w, redirects)
	})
	if err != nil {
		log.Fatal("falha ao gravar relatório detalhado", zap.String("path", detailedPath), zap.Error(err))
	}
	log.Info("redirects gravados", zap.Int("unique", written), zap.Int("total", len(redirects)))

	summary := redirect.Summary(redirects, len(products), len(handles), importPath, detailedPath, summaryPath)
	if err := summary.Save(summaryPath); err != nil {
		log.Error("falha ao salvar resumo", zap.Error(err))
	}
	summary.Print(os.Stdout)
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
