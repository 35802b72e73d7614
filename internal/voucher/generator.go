package voucher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
	"bagy2shopify/internal/shopify"
)

// CustomerSource resolves a source customer id to its record.
type CustomerSource interface {
	GetCustomer(ctx context.Context, id string) (*bagy.Customer, error)
}

// TargetAPI is the part of the target client the generator needs.
type TargetAPI interface {
	SearchCustomerByEmail(ctx context.Context, email string) (*shopify.Customer, error)
	CreatePriceRule(ctx context.Context, rule shopify.PriceRule) (*shopify.PriceRule, error)
	CreateDiscountCode(ctx context.Context, priceRuleID int64, code string) (*shopify.DiscountCode, error)
}

// Generator creates one voucher per balance. A nil Target runs in test
// mode: vouchers are built but nothing is created.
type Generator struct {
	Customers CustomerSource
	Target    TargetAPI
	Delay     time.Duration
	Log       *zap.Logger
	Out       io.Writer
	Now       func() time.Time
}

func NewGenerator(customers CustomerSource, target TargetAPI, log *zap.Logger) *Generator {
	return &Generator{
		Customers: customers,
		Target:    target,
		Delay:     500 * time.Millisecond,
		Log:       logger.OrNop(log),
		Out:       os.Stdout,
		Now:       time.Now,
	}
}

type Result struct {
	Vouchers []Voucher
	Total    decimal.Decimal
	// Skipped counts balances whose customer could not be resolved.
	Skipped int
	Failed  int
	// PermissionDenied is set when the token cannot write price rules.
	PermissionDenied bool
}

func (g *Generator) TestMode() bool { return g.Target == nil }

func (g *Generator) Run(ctx context.Context, balances []bagy.CashbackBalance) Result {
	var res Result
	for i, b := range balances {
		if i > 0 && g.Delay > 0 {
			select {
			case <-ctx.Done():
				return res
			case <-time.After(g.Delay):
			}
		}
		g.printf("\nProcessando %d/%d - Cliente ID: %s\n", i+1, len(balances), b.CustomerID)

		v, err := g.build(ctx, b)
		if err != nil {
			g.log().Warn("cliente não resolvido", zap.String("customer_id", b.CustomerID.String()), zap.Error(err))
			g.printf("   Não foi possível obter dados do cliente %s\n", b.CustomerID)
			res.Skipped++
			observability.Processed("voucher", "skipped")
			continue
		}
		g.printf("   Cliente: %s (%s) | Código: %s | Expira em: %s\n", v.CustomerName, v.CustomerEmail, v.Code, v.ExpiresAt)

		if err := g.create(ctx, &v); err != nil {
			if errors.Is(err, shopify.ErrPermission) {
				res.PermissionDenied = true
			}
			g.log().Warn("falha ao criar voucher", zap.String("code", v.Code), zap.Error(err))
			res.Failed++
			observability.Processed("voucher", "failed")
			continue
		}
		res.Vouchers = append(res.Vouchers, v)
		res.Total = res.Total.Add(v.Balance)
		observability.Processed("voucher", "ok")
	}
	return res
}

var errIncompleteCustomer = errors.New("cliente sem email ou nome")

func (g *Generator) build(ctx context.Context, b bagy.CashbackBalance) (Voucher, error) {
	id := b.CustomerID.String()
	cust, err := g.Customers.GetCustomer(ctx, id)
	if err != nil {
		return Voucher{}, err
	}
	if cust == nil || cust.Email == "" || cust.Name == "" {
		return Voucher{}, errIncompleteCustomer
	}

	v := Voucher{
		CustomerID:    id,
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		Balance:       b.Balance.Value,
		Expiration:    b.NextExpiration.String(),
		ExpiresAt:     ExpiresAt(b.NextExpiration.String(), g.now()),
		Code:          Code(cust.Name, id),
	}

	if g.Target != nil {
		found, err := g.Target.SearchCustomerByEmail(ctx, cust.Email)
		switch {
		case err != nil:
			g.log().Warn("erro ao buscar cliente na Shopify", zap.String("email", cust.Email), zap.Error(err))
		case found != nil:
			v.ShopifyCustomerID = found.ID
		}
	}
	return v, nil
}

func (g *Generator) create(ctx context.Context, v *Voucher) error {
	if g.Target == nil {
		v.Status = StatusTestMode
		return nil
	}
	rule, err := g.Target.CreatePriceRule(ctx, v.PriceRule(g.now()))
	if err != nil {
		return fmt.Errorf("criar price rule: %w", err)
	}
	v.PriceRuleID = rule.ID
	if _, err := g.Target.CreateDiscountCode(ctx, rule.ID, v.Code); err != nil {
		return fmt.Errorf("criar código de desconto: %w", err)
	}
	v.Status = StatusCreated
	return nil
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) printf(format string, args ...any) {
	if g.Out != nil {
		fmt.Fprintf(g.Out, format, args...)
	}
}

func (g *Generator) log() *zap.Logger {
	return logger.OrNop(g.Log)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
