/*
Package projection rebuilds the vault configuration from the operation
history.

The configuration is never stored as ground truth. It is the result of
folding every executed vault state operation, in ascending id order, through
its local mutation starting from an empty state. External effects are never
replayed.
*/
package projection

import (
	"sort"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/state"
	"github.com/iov-one/vault/x/txn"
)

// Replay returns the configuration after all executed vault state operations
// with an id lower or equal to upTo. Zero upTo replays the whole history.
func Replay(records []txn.Transaction, upTo uint64) (*state.State, error) {
	return Fold(state.New(), records, 0, upTo)
}

// Fold applies executed vault state operations with an id in the [from, upTo]
// range on a copy of base. Zero upTo means no upper bound. Records do not
// have to be sorted.
func Fold(base *state.State, records []txn.Transaction, from, upTo uint64) (*state.State, error) {
	st := base.Copy()
	for _, t := range selectExecuted(records, from, upTo) {
		if err := txn.Apply(t, st); err != nil {
			return nil, errors.Wrapf(err, "replay %s %d", t.Kind(), t.Meta().ID)
		}
	}
	return st, nil
}

// selectExecuted returns executed vault state operations with an id in the
// [from, upTo] range sorted by id.
func selectExecuted(records []txn.Transaction, from, upTo uint64) []txn.Transaction {
	selected := make([]txn.Transaction, 0, len(records))
	for _, t := range records {
		c := t.Meta()
		if c.Status != txn.StatusExecuted || !c.VaultState {
			continue
		}
		if c.ID < from || (upTo != 0 && c.ID > upTo) {
			continue
		}
		selected = append(selected, t)
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Meta().ID < selected[j].Meta().ID
	})
	return selected
}

// Rollback returns the configuration without any effect of the operations
// with an id greater or equal to first that are no longer executed. It is
// the snapshot taken right before first with every later executed operation
// applied on top of it.
//
// A later operation that no longer applies on the rolled back configuration
// is finished with the failure status of its kind and returned.
func Rollback(records []txn.Transaction, first uint64, now vault.UnixTime) (*state.State, []txn.Transaction, error) {
	var snapshot *state.State
	if first <= 1 {
		snapshot = state.New()
	} else {
		s, err := Replay(records, first-1)
		if err != nil {
			return nil, nil, errors.Wrap(err, "snapshot")
		}
		snapshot = s
	}

	var invalidated []txn.Transaction
	st := snapshot
	for _, t := range selectExecuted(records, first, 0) {
		next := st.Copy()
		if err := txn.Apply(t, next); err != nil {
			t.Meta().Finish(t.Kind().FailureStatus(), errors.Wrap(err, "invalidated by rollback"), now)
			invalidated = append(invalidated, t)
			continue
		}
		st = next
	}
	return st, invalidated, nil
}
