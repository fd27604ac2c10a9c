package memory

import (
	"context"
)

// TxManager runs functions atomically against a Store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// RunInTx executes fn while holding the store write lock.
// A RunInTx call made inside fn joins the outer transaction.
// On error from fn: every change made through ctx is undone and the error returned.
// On panic from fn: changes are undone and the panic re-raised.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if m.store.txFromCtx(ctx) != nil {
		return fn(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	t := &txn{store: m.store}

	defer func() {
		if r := recover(); r != nil {
			t.rollback()
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, t)); err != nil {
		t.rollback()
		return err
	}

	return nil
}
