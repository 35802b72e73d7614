package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fetchedAt = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

const existsQuery = "SELECT EXISTS(SELECT 1 FROM bagy_raw_records WHERE kind = $1 AND external_id = $2)"

func newRawRepo(t *testing.T) (*RawRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &RawRepository{DB: db, Now: func() time.Time { return fetchedAt }}, mock
}

func TestSaveAllInsertsAndUpdates(t *testing.T) {
	repo, mock := newRawRepo(t)
	records := []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"Camiseta"}`),
		json.RawMessage(`{"name":"sem id"}`),
		json.RawMessage(`{"id":"2","name":"Bermuda"}`),
	}

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs("products", "1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO bagy_raw_records").
		WithArgs(sqlmock.AnyArg(), "products", "1", []byte(records[0]), fetchedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs("products", "2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("UPDATE bagy_raw_records").
		WithArgs([]byte(records[2]), fetchedAt, "products", "2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.SaveAll(context.Background(), "products", records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAllStopsOnError(t *testing.T) {
	repo, mock := newRawRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WillReturnError(errors.New("connection reset"))

	n, err := repo.SaveAll(context.Background(), "customers", []json.RawMessage{
		json.RawMessage(`{"id":5}`), json.RawMessage(`{"id":6}`),
	})
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := newRawRepo(t)
	mock.ExpectQuery("SELECT id, kind, external_id, payload, fetched_at").
		WithArgs("cashback").
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "external_id", "payload", "fetched_at"}).
			AddRow("a1", "cashback", "77", []byte(`{"customer_id":77}`), fetchedAt))

	list, err := repo.List(context.Background(), "cashback")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "77", list[0].ExternalID)
	assert.JSONEq(t, `{"customer_id":77}`, string(list[0].Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newRawRepo(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bagy_raw_records").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExternalID(t *testing.T) {
	assert.Equal(t, "12", ExternalID(json.RawMessage(`{"id":12}`)))
	assert.Equal(t, "ab", ExternalID(json.RawMessage(`{"id":"ab"}`)))
	assert.Equal(t, "9", ExternalID(json.RawMessage(`{"customer_id":9,"balance":1}`)))
	assert.Equal(t, "", ExternalID(json.RawMessage(`[]`)))
}

func TestStageRawWithoutDatabaseIsNoop(t *testing.T) {
	err := StageRaw(context.Background(), "", "products", []json.RawMessage{json.RawMessage(`{"id":1}`)}, nil)
	assert.NoError(t, err)
}
