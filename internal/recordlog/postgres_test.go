package recordlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"funnelzip-demo/internal/common/config"
	"funnelzip-demo/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresLog_AppendToEmptyLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectLogSQL)).
		WithArgs("funnelzip_submissions").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(upsertLogSQL)).
		WithArgs("funnelzip_submissions", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	l := NewPostgresLog(db)
	require.NoError(t, l.Append(context.Background(), "funnelzip_submissions", record(1)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLog_AppendExtendsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	existing, err := json.Marshal([]models.SubmissionRecord{record(1)})
	require.NoError(t, err)
	extended, err := json.Marshal([]models.SubmissionRecord{record(1), record(2)})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(selectLogSQL)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"entries"}).AddRow(existing))
	mock.ExpectExec(regexp.QuoteMeta(upsertLogSQL)).
		WithArgs("k", extended).
		WillReturnResult(sqlmock.NewResult(0, 1))

	l := NewPostgresLog(db)
	require.NoError(t, l.Append(context.Background(), "k", record(2)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLog_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stored, _ := json.Marshal([]models.SubmissionRecord{record(1), record(2)})
	mock.ExpectQuery(regexp.QuoteMeta(selectLogSQL)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"entries"}).AddRow(stored))

	got, err := NewPostgresLog(db).List(context.Background(), "k")
	require.NoError(t, err)
	assertSameRecords(t, []models.SubmissionRecord{record(1), record(2)}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLog_Unavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectLogSQL)).
		WithArgs("k").
		WillReturnError(errors.New("connection reset"))

	err = NewPostgresLog(db).Append(context.Background(), "k", record(1))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_PostgresRunsMigration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS submission_logs")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	l, err := New(context.Background(), config.StorageConfig{Backend: config.BackendPostgres}, Backends{Postgres: db})
	require.NoError(t, err)
	assert.IsType(t, &PostgresLog{}, l)
	assert.NoError(t, mock.ExpectationsWereMet())
}
