package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/cache"
	"bagy2shopify/internal/config"
	"bagy2shopify/internal/export"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
	"bagy2shopify/internal/sheet"
	"bagy2shopify/internal/shopify"
	"bagy2shopify/internal/voucher"
)

// go run ./cmd/generate-vouchers -limit=10
// go run ./cmd/generate-vouchers -limit=0
func main() {
	input := flag.String("input", "", "Saldos de cashback (padrão: <IMPORTED_DIR>/cashback_saldos.json)")
	limit := flag.Int("limit", 10, "Número máximo de vouchers (0 = todos)")
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
	if *input == "" {
		*input = filepath.Join(cfg.ImportedDir, "cashback_saldos.json")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := export.LoadJSON(*input)
	if err != nil {
		log.Fatal("falha ao ler saldos de cashback", zap.String("path", *input), zap.Error(err))
	}
	balances := voucher.Positive(bagy.Decode[bagy.CashbackBalance](records, func(i int, err error) {
		log.Warn("saldo ilegível", zap.Int("index", i+1), zap.Error(err))
	}), *limit)
	fmt.Printf("Clientes com saldo a processar: %d\n", len(balances))
	if len(balances) == 0 {
		return
	}

	var store cache.Store
	if cfg.RedisURL != "" {
		rs, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal("REDIS_URL inválida", zap.Error(err))
		}
		defer rs.Close()
		store = rs
	}
	customers := cache.NewCustomers(bagy.NewClient(cfg, log), store, log)

	var target voucher.TargetAPI
	if cfg.ShopifyEnabled() {
		target = shopify.NewClient(cfg, log)
	} else {
		fmt.Println("Credenciais da Shopify ausentes: executando em modo de teste")
	}

	gen := voucher.NewGenerator(customers, target, log)
	res := gen.Run(ctx, balances)

	now := time.Now()
	files := ""
	if len(res.Vouchers) > 0 {
		path := filepath.Join(cfg.ConvertedDir, "vouchers_shopify_"+now.Format("20060102_150405")+".xlsx")
		if err := sheet.Write(path, voucher.Table(res.Vouchers, now)); err != nil {
			log.Error("falha ao gerar planilha", zap.Error(err))
		} else {
			files = path
		}
	}

	rep := res.Report(gen.TestMode(), cfg.ShopifyShopDomain)
	if files != "" {
		rep.Section("ARQUIVOS GERADOS").Linef("- %s", files)
	}
	rep.Print(os.Stdout)

	if res.PermissionDenied {
		os.Exit(1)
	}
}
