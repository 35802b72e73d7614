package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/model"
)

const rawSchema = `
CREATE TABLE IF NOT EXISTS bagy_raw_records (
	id          uuid PRIMARY KEY,
	kind        text NOT NULL,
	external_id text NOT NULL,
	payload     jsonb NOT NULL,
	fetched_at  timestamptz NOT NULL,
	UNIQUE (kind, external_id)
)`

// RawRepository stages source records in Postgres so a run can be
// inspected or replayed without calling the API again.
type RawRepository struct {
	DB  *sql.DB
	Now func() time.Time
}

func (r *RawRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, rawSchema)
	return err
}

func (r *RawRepository) Save(ctx context.Context, rec model.RawRecord) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM bagy_raw_records WHERE kind = $1 AND external_id = $2)",
		rec.Kind, rec.ExternalID).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE bagy_raw_records
			SET payload = $1, fetched_at = $2
			WHERE kind = $3 AND external_id = $4
		`, rec.Payload, rec.FetchedAt, rec.Kind, rec.ExternalID)
	} else {
		_, err = r.DB.ExecContext(ctx, `
			INSERT INTO bagy_raw_records
			(id, kind, external_id, payload, fetched_at)
			VALUES ($1, $2, $3, $4, $5)
		`, rec.ID, rec.Kind, rec.ExternalID, rec.Payload, rec.FetchedAt)
	}
	return err
}

// SaveAll stages every record that carries an id. It returns how many
// were written and stops at the first database error.
func (r *RawRepository) SaveAll(ctx context.Context, kind string, records []json.RawMessage) (int, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	saved := 0
	for _, raw := range records {
		id := ExternalID(raw)
		if id == "" {
			continue
		}
		rec := model.RawRecord{
			ID:         uuid.NewString(),
			Kind:       kind,
			ExternalID: id,
			Payload:    raw,
			FetchedAt:  now(),
		}
		if err := r.Save(ctx, rec); err != nil {
			return saved, apperr.New(apperr.KindSink, "falha ao gravar registro "+id, err)
		}
		saved++
	}
	return saved, nil
}

func (r *RawRepository) List(ctx context.Context, kind string) ([]model.RawRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, kind, external_id, payload, fetched_at
		FROM bagy_raw_records
		WHERE kind = $1
		ORDER BY fetched_at, external_id
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.RawRecord
	for rows.Next() {
		var rec model.RawRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.ExternalID, &rec.Payload, &rec.FetchedAt); err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// ExternalID reads the top level "id" of a record, number or string.
func ExternalID(raw json.RawMessage) string {
	var head struct {
		ID         bagy.Text `json:"id"`
		CustomerID bagy.Text `json:"customer_id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return ""
	}
	if head.ID != "" {
		return head.ID.String()
	}
	return head.CustomerID.String()
}
