/*
Package transfer declares the external systems the vault delegates to: the
ledger executing fund movements and the hosting platform.

Every call is a single atomic step. It either succeeds or returns an error
that is recorded on the operation. There is no retry.
*/
package transfer

import (
	"context"

	"github.com/iov-one/vault/errors"
)

// Order describes a single outgoing transfer. An empty Ledger addresses the
// executor default ledger.
type Order struct {
	Ledger   string
	Wallet   string
	Currency string
	To       []byte
	Amount   uint64
	Memo     string
}

// Validate returns an error if the order cannot be sent.
func (o Order) Validate() error {
	var errs error
	if o.Wallet == "" {
		errs = errors.AppendField(errs, "Wallet", errors.ErrEmpty)
	}
	if len(o.To) == 0 {
		errs = errors.AppendField(errs, "To", errors.ErrEmpty)
	}
	if o.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// Executor moves funds on an external ledger. On success the block index of
// the ledger transaction is returned.
type Executor interface {
	Transfer(ctx context.Context, o Order) (uint64, error)
	TransferLinked(ctx context.Context, ledger string, o Order) (uint64, error)
	TopUp(ctx context.Context, wallet, currency string, amount uint64) (uint64, error)
}

// Platform is the host running the vault.
type Platform interface {
	Controllers(ctx context.Context) ([]string, error)
	UpdateControllers(ctx context.Context, principals []string) error
	Upgrade(ctx context.Context, version string) error
}
