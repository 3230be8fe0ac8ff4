// Package mocks provides test doubles for pkg/database.
package mocks

import (
	"context"

	"library-backend/pkg/database"
)

// TxManager runs the callback with a nil transaction. Repository doubles
// return themselves from WithTx, so no database is involved.
type TxManager struct {
	Calls int
	// Err, when set, is returned without running the callback.
	Err error
}

var _ database.TxManager = (*TxManager)(nil)

func (m *TxManager) WithTransaction(ctx context.Context, fn database.TxFunc) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(nil)
}
