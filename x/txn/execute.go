package txn

import (
	"context"
	"encoding/hex"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/state"
	"github.com/iov-one/vault/x/transfer"
)

// Registry gives an executing purge access to the other records.
type Registry interface {
	// Purge marks every unfinished record except the given one as purged
	// and returns how many were marked.
	Purge(ctx context.Context, except uint64, now vault.UnixTime) int
}

// Env holds the external collaborators used by Execute.
type Env struct {
	Executor transfer.Executor
	Platform transfer.Platform
	Registry Registry
	// Ledger is the default ledger of transfers not addressed to a linked
	// ledger.
	Ledger string
}

// Execute runs an approved operation. Vault state operations are applied to
// a copy of st. External effects are delegated to env. The record ends
// Executed or in the failure status of its kind with the error attached. A
// panic raised while executing ends the record with ErrPanic. The operation
// is never attempted again.
//
// The returned state is the new configuration. It is st unless a vault state
// operation succeeded.
func Execute(ctx context.Context, env Env, t Transaction, st *state.State, now vault.UnixTime) *state.State {
	c := t.Meta()
	if c.Status != StatusApproved {
		return st
	}
	c.ModifiedAt = now

	next := st
	if c.VaultState {
		next = st.Copy()
		if err := safeApply(t, next); err != nil {
			c.Finish(t.Kind().FailureStatus(), err, now)
			return st
		}
	}

	if err := safeEffect(ctx, env, t, now); err != nil {
		c.Finish(t.Kind().FailureStatus(), err, now)
		return st
	}
	c.Finish(StatusExecuted, nil, now)
	return next
}

func safeApply(t Transaction, st *state.State) (err error) {
	defer errors.Recover(&err)
	return Apply(t, st)
}

func safeEffect(ctx context.Context, env Env, t Transaction, now vault.UnixTime) (err error) {
	defer errors.Recover(&err)
	return effect(ctx, env, t, now)
}

// effect performs the external part of an operation.
func effect(ctx context.Context, env Env, t Transaction, now vault.UnixTime) error {
	switch tx := t.(type) {
	case *Transfer:
		block, err := transferOut(ctx, env, "", tx.TransferRequest)
		tx.BlockIndex = block
		return err
	case *TransferQuorum:
		block, err := transferOut(ctx, env, "", tx.TransferRequest)
		tx.BlockIndex = block
		return err
	case *TransferLinked:
		block, err := transferOut(ctx, env, tx.Ledger, TransferRequest{
			Wallet:  tx.Wallet,
			Address: tx.To,
			Amount:  tx.Amount,
			Memo:    tx.Memo,
		})
		tx.BlockIndex = block
		return err
	case *TopUp:
		block, err := topUp(ctx, env, tx.TopUpRequest)
		tx.BlockIndex = block
		return err
	case *TopUpQuorum:
		block, err := topUp(ctx, env, tx.TopUpRequest)
		tx.BlockIndex = block
		return err
	case *ControllersUpdate:
		if env.Platform == nil {
			return errors.Wrap(errors.ErrControllersUpdate, "no platform")
		}
		current, err := env.Platform.Controllers(ctx)
		if err != nil {
			return errors.Wrapf(errors.ErrControllersUpdate, "current controllers: %s", err)
		}
		tx.CurrentControllers = current
		if err := env.Platform.UpdateControllers(ctx, tx.Principals); err != nil {
			return errors.Wrap(errors.ErrControllersUpdate, err.Error())
		}
		return nil
	case *VersionUpgrade:
		if env.Platform == nil {
			return errors.Wrap(errors.ErrCanisterReject, "no platform")
		}
		if err := env.Platform.Upgrade(ctx, tx.Version); err != nil {
			return errors.Wrap(errors.ErrCanisterReject, err.Error())
		}
		return nil
	case *Purge:
		if env.Registry != nil {
			tx.Purged = uint32(env.Registry.Purge(ctx, tx.ID, now))
		}
		return nil
	}
	return nil
}

func transferOut(ctx context.Context, env Env, ledger string, r TransferRequest) (uint64, error) {
	if env.Executor == nil {
		return 0, errors.Wrap(errors.ErrCanisterReject, "no transfer executor")
	}
	to, err := hex.DecodeString(r.Address)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCanisterReject, "invalid destination address: %s", err)
	}
	order := transfer.Order{
		Ledger:   env.Ledger,
		Wallet:   r.Wallet,
		Currency: r.Currency,
		To:       to,
		Amount:   r.Amount,
		Memo:     r.Memo,
	}

	var block uint64
	if ledger == "" {
		block, err = env.Executor.Transfer(ctx, order)
	} else {
		order.Ledger = ledger
		block, err = env.Executor.TransferLinked(ctx, ledger, order)
	}
	if err != nil {
		return 0, errors.Wrap(errors.ErrCanisterReject, err.Error())
	}
	return block, nil
}

func topUp(ctx context.Context, env Env, r TopUpRequest) (uint64, error) {
	if env.Executor == nil {
		return 0, errors.Wrap(errors.ErrCanisterReject, "no transfer executor")
	}
	block, err := env.Executor.TopUp(ctx, r.Wallet, r.Currency, r.Amount)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCanisterReject, err.Error())
	}
	return block, nil
}
