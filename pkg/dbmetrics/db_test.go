package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct{ DBExecutor }

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := &DB{db: &sql.DB{}}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := stubTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("SELECT id FROM appointments"))
	assert.Equal(t, "update", operationOf("\n  UPDATE appointments SET status = $1"))
	assert.Equal(t, "insert", operationOf("INSERT\tINTO promotions"))
}
