package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/db"
	"bagy2shopify/internal/logger"
)

// StageRaw copies fetched records into the staging table. It does
// nothing when databaseURL is empty.
func StageRaw(ctx context.Context, databaseURL, kind string, records []json.RawMessage, log *zap.Logger) error {
	if databaseURL == "" {
		return nil
	}
	log = logger.OrNop(log)

	conn, err := db.New(databaseURL)
	if err != nil {
		return apperr.New(apperr.KindConfig, "DATABASE_URL inválida", err)
	}
	defer conn.Close()
	if err := conn.PingContext(ctx); err != nil {
		return apperr.New(apperr.KindSink, "banco de dados indisponível", err)
	}

	repo := &RawRepository{DB: conn}
	if err := repo.EnsureSchema(ctx); err != nil {
		return apperr.New(apperr.KindSink, "falha ao criar tabela de staging", err)
	}
	n, err := repo.SaveAll(ctx, kind, records)
	log.Info("registros gravados no staging", zap.String("kind", kind), zap.Int("saved", n), zap.Int("total", len(records)))
	return err
}
