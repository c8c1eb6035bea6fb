package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/paneldeck/paneldeck/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func newMockLayoutAdapter(t *testing.T) (*LayoutAdapter, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPrepare(regexp.QuoteMeta(queryGetLayout))
	mock.ExpectPrepare(regexp.QuoteMeta(queryUpsertLayout))

	adapter, err := NewLayoutAdapter(db)
	require.NoError(t, err)
	return adapter, mock
}

func TestLayoutAdapter_GetLayout(t *testing.T) {
	adapter, mock := newMockLayoutAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryGetLayout)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"layout"}).AddRow([]byte(`[{"id":"w1"}]`)))

	layout, err := adapter.GetLayout(context.Background(), "user-1")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"w1"}]`, string(layout))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLayoutAdapter_GetLayoutNotFound(t *testing.T) {
	adapter, mock := newMockLayoutAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryGetLayout)).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := adapter.GetLayout(context.Background(), "nobody")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLayoutAdapter_SaveLayout(t *testing.T) {
	adapter, mock := newMockLayoutAdapter(t)
	now := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	adapter.nowFn = func() time.Time { return now }

	layout := json.RawMessage(`[{"id":"w1","op":"count"}]`)
	mock.ExpectQuery(regexp.QuoteMeta(queryUpsertLayout)).
		WithArgs(sqlmock.AnyArg(), "user-1", []byte(layout), now).
		WillReturnRows(sqlmock.NewRows([]string{"layout"}).AddRow([]byte(layout)))

	stored, err := adapter.SaveLayout(context.Background(), "user-1", layout)
	require.NoError(t, err)
	require.JSONEq(t, string(layout), string(stored))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLayoutAdapter_SaveLayoutError(t *testing.T) {
	adapter, mock := newMockLayoutAdapter(t)
	dbErr := errors.New("unique violation")

	mock.ExpectQuery(regexp.QuoteMeta(queryUpsertLayout)).WillReturnError(dbErr)

	_, err := adapter.SaveLayout(context.Background(), "user-1", json.RawMessage(`[]`))
	require.ErrorIs(t, err, dbErr)
	require.ErrorContains(t, err, "failed to save layout")
}

func TestNewLayoutAdapter_PrepareFailureClosesEarlierStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	prepareErr := errors.New("syntax error")
	mock.ExpectPrepare(regexp.QuoteMeta(queryGetLayout)).WillBeClosed()
	mock.ExpectPrepare(regexp.QuoteMeta(queryUpsertLayout)).WillReturnError(prepareErr)

	_, err = NewLayoutAdapter(db)
	require.ErrorIs(t, err, prepareErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
