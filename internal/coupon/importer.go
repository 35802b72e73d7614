package coupon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
	"bagy2shopify/internal/shopify"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DiscountAPI is the part of the target client the importer needs.
type DiscountAPI interface {
	CreatePriceRule(ctx context.Context, rule shopify.PriceRule) (*shopify.PriceRule, error)
	CreateDiscountCode(ctx context.Context, priceRuleID int64, code string) (*shopify.DiscountCode, error)
}

// Result is the outcome of importing one coupon.
type Result struct {
	RunID          string `json:"run_id"`
	BagyID         string `json:"bagy_id"`
	BagyCode       string `json:"bagy_code"`
	PriceRuleID    int64  `json:"shopify_price_rule_id,omitempty"`
	DiscountCodeID int64  `json:"shopify_discount_code_id,omitempty"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}

type Importer struct {
	API   DiscountAPI
	Delay time.Duration
	Log   *zap.Logger
	Out   io.Writer
	RunID string
}

func NewImporter(api DiscountAPI, delay time.Duration, log *zap.Logger) *Importer {
	return &Importer{API: api, Delay: delay, Log: logger.OrNop(log), Out: os.Stdout, RunID: uuid.NewString()}
}

// Import creates a price rule and a discount code for each coupon in
// order. A failure is recorded in the coupon's result and the run goes on.
func (im *Importer) Import(ctx context.Context, coupons []Coupon) []Result {
	log := logger.OrNop(im.Log)
	out := im.Out
	if out == nil {
		out = io.Discard
	}

	results := make([]Result, 0, len(coupons))
	for i, c := range coupons {
		if i > 0 && im.Delay > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(im.Delay):
			}
		}
		fmt.Fprintf(out, "[%d/%d] Processando cupom: %s - Código: %s\n", i+1, len(coupons), c.Name, c.Code)

		r := im.importOne(ctx, c)
		if r.Status == StatusSuccess {
			observability.Processed("coupon", "ok")
		} else {
			observability.Processed("coupon", "failed")
			log.Warn("falha ao importar cupom",
				zap.String("bagy_id", c.ID), zap.String("code", c.Code), zap.String("error", r.Error))
		}
		results = append(results, r)
	}
	return results
}

func (im *Importer) importOne(ctx context.Context, c Coupon) Result {
	r := Result{RunID: im.RunID, BagyID: c.ID, BagyCode: c.Code, Status: StatusError}

	rule, err := im.API.CreatePriceRule(ctx, c.PriceRule())
	if err != nil {
		r.Error = "Falha ao criar price rule: " + err.Error()
		return r
	}
	r.PriceRuleID = rule.ID

	code, err := im.API.CreateDiscountCode(ctx, rule.ID, c.Code)
	if err != nil {
		r.Error = "Falha ao criar código de desconto: " + err.Error()
		return r
	}
	r.DiscountCodeID = code.ID
	r.Status = StatusSuccess
	return r
}

// Counts returns how many results succeeded and failed.
func Counts(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.Status == StatusSuccess {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}

// SaveResults writes results to dir/import_results.json and to a copy
// stamped with now. It returns both paths.
func SaveResults(dir string, results []Result, now time.Time) (latest, stamped string, err error) {
	if results == nil {
		results = []Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", "", apperr.New(apperr.KindSink, "falha ao serializar resultados", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", apperr.New(apperr.KindSink, "falha ao criar "+dir, err)
	}

	latest = filepath.Join(dir, "import_results.json")
	stamped = filepath.Join(dir, fmt.Sprintf("import_results_%s.json", now.Format("20060102_150405")))
	for _, p := range []string{stamped, latest} {
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return "", "", apperr.New(apperr.KindSink, "falha ao salvar "+p, err)
		}
	}
	return latest, stamped, nil
}
