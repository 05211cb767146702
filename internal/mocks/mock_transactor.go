package mocks

import (
	"context"
)

// MockTransactor runs fn directly. Err, when set, is returned instead of
// calling fn, simulating a failure to begin the transaction.
type MockTransactor struct {
	Err   error
	Calls int
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++

	if m.Err != nil {
		return m.Err
	}

	return fn(ctx)
}
