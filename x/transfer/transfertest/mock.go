// Package transfertest provides mock implementations of the transfer
// collaborators.
package transfertest

import (
	"context"

	"github.com/iov-one/vault/x/transfer"
	"github.com/stretchr/testify/mock"
)

// Executor is a mock transfer.Executor.
type Executor struct {
	mock.Mock
}

var _ transfer.Executor = (*Executor)(nil)

func (m *Executor) Transfer(ctx context.Context, o transfer.Order) (uint64, error) {
	args := m.Called(o)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Executor) TransferLinked(ctx context.Context, ledger string, o transfer.Order) (uint64, error) {
	args := m.Called(ledger, o)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Executor) TopUp(ctx context.Context, wallet, currency string, amount uint64) (uint64, error) {
	args := m.Called(wallet, currency, amount)
	return args.Get(0).(uint64), args.Error(1)
}

// Platform is a mock transfer.Platform.
type Platform struct {
	mock.Mock
}

var _ transfer.Platform = (*Platform)(nil)

func (m *Platform) Controllers(ctx context.Context) ([]string, error) {
	args := m.Called()
	cs, _ := args.Get(0).([]string)
	return cs, args.Error(1)
}

func (m *Platform) UpdateControllers(ctx context.Context, principals []string) error {
	return m.Called(principals).Error(0)
}

func (m *Platform) Upgrade(ctx context.Context, version string) error {
	return m.Called(version).Error(0)
}
