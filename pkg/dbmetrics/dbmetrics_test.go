package dbmetrics

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type recorded struct {
	mu  sync.Mutex
	ops []string
}

func (r *recorded) observe(op string, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func openDB(t *testing.T) (*DB, *recorded) {
	t.Helper()

	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })

	rec := &recorded{}
	return Wrap(raw, rec.observe), rec
}

func TestDB_ObservesQueries(t *testing.T) {
	ctx := context.Background()
	db, rec := openDB(t)

	_, err := db.ExecContext(ctx, "CREATE TABLE t (v INTEGER)")
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 0, n)

	assert.Equal(t, []string{"exec", "query_row"}, rec.ops)
}

func TestGetExecutor(t *testing.T) {
	ctx := context.Background()
	db, rec := openDB(t)

	_, err := db.ExecContext(ctx, "CREATE TABLE t (v INTEGER)")
	require.NoError(t, err)

	assert.Same(t, db, GetExecutor(ctx, db))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	txCtx := WithTx(ctx, tx)
	assert.Same(t, tx, GetExecutor(txCtx, db))

	_, err = GetExecutor(txCtx, db).ExecContext(txCtx, "INSERT INTO t (v) VALUES (1)")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 1, n)
	assert.Contains(t, rec.ops, "commit")
}
