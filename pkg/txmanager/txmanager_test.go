package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed   bool
	rolledBack  bool
	commitErr   error
	rollbackErr error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return t.rollbackErr
}

type fakeDB struct {
	tx    *fakeTx
	opts  []*sql.TxOptions
	begin error
}

func (d *fakeDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	d.opts = append(d.opts, opts)
	if d.begin != nil {
		return nil, d.begin
	}
	return d.tx, nil
}

func TestDo_Commits(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, db.opts[0].Isolation)
}

func TestDo_RollsBackAndKeepsError(t *testing.T) {
	errConflict := errors.New("conflict")

	db := &fakeDB{tx: &fakeTx{}}
	err := NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error {
		return errConflict
	})
	assert.ErrorIs(t, err, errConflict)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)

	db = &fakeDB{tx: &fakeTx{rollbackErr: errors.New("connection lost")}}
	err = NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error {
		return errConflict
	})
	assert.ErrorIs(t, err, errConflict)
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.Len(t, db.opts, 1)
}

func TestDo_BeginAndCommitErrors(t *testing.T) {
	db := &fakeDB{begin: errors.New("pool exhausted")}
	err := NewTransactionManager(db).DoReadOnly(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrTransaction)

	db = &fakeDB{tx: &fakeTx{commitErr: sql.ErrTxDone}}
	err = NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, sql.ErrTxDone)
}
