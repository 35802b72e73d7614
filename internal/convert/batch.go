package convert

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
)

const progressEvery = 50

// Outcome is the result of converting one product: rows on success, or
// the reason it was skipped.
type Outcome struct {
	Index   int
	Product string
	Handle  string
	Rows    []Row
	Err     error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Report aggregates a conversion run.
type Report struct {
	Total     int
	Invalid   int
	Processed int
	Failed    int
	// Renamed counts products whose handle collided with an earlier one.
	Renamed int
	Rows    []Row
	Skipped []Outcome
}

// Converter turns a product snapshot into import rows.
type Converter struct {
	// MaxProducts limits how many valid products are converted; 0 means all.
	MaxProducts int
	Log         *zap.Logger

	used map[string]bool
	next map[string]int
}

func NewConverter(log *zap.Logger) *Converter {
	return &Converter{Log: logger.OrNop(log)}
}

// ConvertRaw decodes and converts every raw record. Records that fail to
// decode or flatten are counted and skipped; records without a name are
// counted as invalid and never reach the flattener.
func (c *Converter) ConvertRaw(raw []json.RawMessage) Report {
	c.reset()
	log := logger.OrNop(c.Log)
	report := Report{Total: len(raw)}

	var products []indexed
	for i, r := range raw {
		var p bagy.Product
		if err := json.Unmarshal(r, &p); err != nil {
			err = apperr.New(apperr.KindRecord, fmt.Sprintf("registro %d ilegível", i+1), err)
			log.Warn("erro ao ler produto", zap.Int("index", i+1), zap.Error(err))
			report.Failed++
			report.Skipped = append(report.Skipped, Outcome{Index: i, Err: err})
			observability.Processed("convert", "failed")
			continue
		}
		if p.Name == "" {
			report.Invalid++
			observability.Processed("convert", "invalid")
			continue
		}
		products = append(products, indexed{i, p})
	}

	if c.MaxProducts > 0 && len(products) > c.MaxProducts {
		products = products[:c.MaxProducts]
	}

	for _, ip := range products {
		out := c.convertOne(ip.index, &ip.product)
		if !out.OK() {
			log.Warn("erro ao processar produto",
				zap.Int("index", ip.index+1),
				zap.String("product", ip.product.Name),
				zap.Error(out.Err))
			report.Failed++
			report.Skipped = append(report.Skipped, out)
			observability.Processed("convert", "failed")
			continue
		}
		if out.Handle != Slugify(ip.product.Name) {
			report.Renamed++
		}
		report.Rows = append(report.Rows, out.Rows...)
		report.Processed++
		observability.Processed("convert", "ok")
		if report.Processed%progressEvery == 0 {
			log.Info("progresso da conversão", zap.Int("processed", report.Processed))
		}
	}
	return report
}

type indexed struct {
	index   int
	product bagy.Product
}

func (c *Converter) convertOne(i int, p *bagy.Product) Outcome {
	handle := c.uniqueHandle(Slugify(p.Name))
	rows, err := FlattenAs(p, handle)
	return Outcome{Index: i, Product: p.Name, Handle: handle, Rows: rows, Err: err}
}

// uniqueHandle returns h, or h-2, h-3, ... when h is already taken in this run.
func (c *Converter) uniqueHandle(h string) string {
	if !c.used[h] {
		c.used[h] = true
		return h
	}
	n := c.next[h]
	if n < 2 {
		n = 2
	}
	for {
		candidate := fmt.Sprintf("%s-%d", h, n)
		n++
		if !c.used[candidate] {
			c.next[h] = n
			c.used[candidate] = true
			logger.OrNop(c.Log).Warn("handle duplicado, usando sufixo",
				zap.String("handle", h), zap.String("renamed", candidate))
			return candidate
		}
	}
}

func (c *Converter) reset() {
	c.used = make(map[string]bool)
	c.next = make(map[string]int)
}
