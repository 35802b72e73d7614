package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bagy2shopify/internal/model"
)

const matchSchema = `
CREATE TABLE IF NOT EXISTS catalog_matches (
	shopify_id    text PRIMARY KEY,
	bagy_id       text NOT NULL,
	shopify_title text NOT NULL,
	bagy_name     text NOT NULL,
	similarity    double precision NOT NULL,
	shopify_url   text NOT NULL,
	bagy_url      text NOT NULL,
	matched_at    timestamptz NOT NULL
)`

const upsertMatch = `
	INSERT INTO catalog_matches
	(shopify_id, bagy_id, shopify_title, bagy_name, similarity, shopify_url, bagy_url, matched_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (shopify_id) DO UPDATE SET
		bagy_id = EXCLUDED.bagy_id,
		shopify_title = EXCLUDED.shopify_title,
		bagy_name = EXCLUDED.bagy_name,
		similarity = EXCLUDED.similarity,
		shopify_url = EXCLUDED.shopify_url,
		bagy_url = EXCLUDED.bagy_url,
		matched_at = EXCLUDED.matched_at
`

// PgxDB is the subset of *pgxpool.Pool the match repository uses.
type PgxDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// MatchRepository keeps the latest accepted match per target product.
type MatchRepository struct {
	DB PgxDB
}

func (r *MatchRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, matchSchema)
	return err
}

func (r *MatchRepository) Save(ctx context.Context, m model.CatalogMatch) error {
	_, err := r.DB.Exec(ctx, upsertMatch,
		m.ShopifyID, m.BagyID,
		strings.ToValidUTF8(m.ShopifyTitle, ""), strings.ToValidUTF8(m.BagyName, ""),
		m.Similarity, m.ShopifyURL, m.BagyURL, m.MatchedAt)
	return err
}

// SaveAll upserts matches, stamping those without a time with now.
func (r *MatchRepository) SaveAll(ctx context.Context, matches []model.CatalogMatch, now time.Time) (int, error) {
	for i, m := range matches {
		if m.MatchedAt.IsZero() {
			m.MatchedAt = now
		}
		if err := r.Save(ctx, m); err != nil {
			return i, err
		}
	}
	return len(matches), nil
}

// List returns stored matches at or above minScore, best first.
func (r *MatchRepository) List(ctx context.Context, minScore float64) ([]model.CatalogMatch, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT shopify_id, bagy_id, shopify_title, bagy_name, similarity, shopify_url, bagy_url, matched_at
		FROM catalog_matches
		WHERE similarity >= $1
		ORDER BY similarity DESC, shopify_id
	`, minScore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.CatalogMatch
	for rows.Next() {
		var m model.CatalogMatch
		if err := rows.Scan(&m.ShopifyID, &m.BagyID, &m.ShopifyTitle, &m.BagyName, &m.Similarity, &m.ShopifyURL, &m.BagyURL, &m.MatchedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
