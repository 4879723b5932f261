package transfer

import (
	"context"
	"sort"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// DevLedger is an in-process ledger used by the daemon in development mode.
// It keeps balances per wallet and currency. Top ups credit a wallet and
// transfers debit it.
type DevLedger struct {
	blocks   uint64
	balances map[string]uint64
}

var _ Executor = (*DevLedger)(nil)

// NewDevLedger returns an empty ledger.
func NewDevLedger() *DevLedger {
	return &DevLedger{balances: make(map[string]uint64)}
}

func balanceKey(wallet, currency string) string {
	return wallet + "/" + currency
}

// Balance returns the funds held by wallet.
func (l *DevLedger) Balance(wallet, currency string) uint64 {
	return l.balances[balanceKey(wallet, currency)]
}

func (l *DevLedger) Transfer(ctx context.Context, o Order) (uint64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	key := balanceKey(o.Wallet, o.Currency)
	if l.balances[key] < o.Amount {
		return 0, errors.ErrAmount.Newf("insufficient funds: %d %s available", l.balances[key], o.Currency)
	}
	l.balances[key] -= o.Amount
	l.blocks++
	vault.GetLogger(ctx).With("module", "devledger").
		Info("transfer", "wallet", o.Wallet, "amount", o.Amount, "block", l.blocks)
	return l.blocks, nil
}

func (l *DevLedger) TransferLinked(ctx context.Context, ledger string, o Order) (uint64, error) {
	if ledger == "" {
		return 0, errors.Field("Ledger", errors.ErrEmpty, "required")
	}
	o.Currency = ledger
	return l.Transfer(ctx, o)
}

func (l *DevLedger) TopUp(ctx context.Context, wallet, currency string, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, errors.Field("Amount", errors.ErrAmount, "must be positive")
	}
	key := balanceKey(wallet, currency)
	if l.balances[key]+amount < amount {
		return 0, errors.Wrap(errors.ErrOverflow, "balance")
	}
	l.balances[key] += amount
	l.blocks++
	return l.blocks, nil
}

// DevPlatform records controller changes and upgrades in memory.
type DevPlatform struct {
	controllers []string
	Upgrades    []string
}

var _ Platform = (*DevPlatform)(nil)

// NewDevPlatform returns a platform with given initial controllers.
func NewDevPlatform(controllers ...string) *DevPlatform {
	return &DevPlatform{controllers: controllers}
}

func (p *DevPlatform) Controllers(context.Context) ([]string, error) {
	return append([]string(nil), p.controllers...), nil
}

func (p *DevPlatform) UpdateControllers(ctx context.Context, principals []string) error {
	if len(principals) == 0 {
		return errors.Wrap(errors.ErrEmpty, "controllers")
	}
	cs := append([]string(nil), principals...)
	sort.Strings(cs)
	p.controllers = cs
	return nil
}

func (p *DevPlatform) Upgrade(ctx context.Context, version string) error {
	p.Upgrades = append(p.Upgrades, version)
	return nil
}
