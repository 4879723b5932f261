package txn

import (
	"github.com/Masterminds/semver/v3"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/policy"
	"github.com/iov-one/vault/x/state"
)

// Threshold computes the number of approvals an operation requires in given
// state.
func Threshold(t Transaction, st *state.State) (uint32, error) {
	quorum := st.Quorum.Quorum

	switch tx := t.(type) {
	case *MemberCreate, *MemberRemove, *MemberRoleUpdate, *MemberNameUpdate,
		*MemberExtendAccount, *WalletCreate, *WalletUpdateName,
		*PolicyCreate, *PolicyUpdate, *PolicyRemove,
		*QuorumUpdate, *VaultNamingUpdate, *VersionUpgrade, *Purge,
		*TransferQuorum, *TransferLinked, *TopUpQuorum:
		// Admin quorum.
	case *ControllersUpdate:
		if admins := st.Admins(); admins < quorum {
			quorum = admins
		}
	case *LedgerAdd, *LedgerRemove:
		return 1, nil
	case *Transfer:
		_, n, err := policy.Resolve(st, tx.Wallet, tx.Amount)
		return n, err
	case *TopUp:
		_, n, err := policy.Resolve(st, tx.Wallet, tx.Amount)
		return n, err
	default:
		return 0, errors.ErrUnknownOperation.Newf("%T", t)
	}

	if quorum == 0 {
		return 0, errors.ErrThresholdDefine.Newf("no quorum for %s", t.Kind())
	}
	return quorum, nil
}

// DefineState runs the vote driven transitions of a record that is not
// terminal: Blocked to Pending once it is no longer blocked, Pending to
// Approved once enough approvals are collected and Pending to Rejected once
// the threshold can no longer be reached. The threshold is resolved on the
// first transition out of Blocked and never recomputed.
//
// It returns true if the status changed.
func DefineState(t Transaction, st *state.State, blocked bool, now vault.UnixTime) bool {
	c := t.Meta()
	from := c.Status
	if from.Terminal() || from == StatusApproved {
		return false
	}
	if blocked {
		if from != StatusBlocked {
			c.Status = StatusBlocked
			c.ModifiedAt = now
			return true
		}
		return false
	}

	c.Status = StatusPending
	if c.Threshold == 0 {
		n, err := Threshold(t, st)
		if err != nil {
			c.Finish(StatusFailed, err, now)
			return true
		}
		c.Threshold = n
	}

	roles := t.Kind().AcceptedRoles()
	approves, rejects := c.Tally(st, roles)
	eligible := st.Count(roles)
	switch {
	case approves >= c.Threshold:
		c.Status = StatusApproved
	case eligible < rejects || eligible-rejects < c.Threshold:
		c.Finish(StatusRejected, errors.ErrQuorumNotReachable.Newf("%d of %d voters rejected, %d approvals required", rejects, eligible, c.Threshold), now)
	}

	if c.Status != from {
		c.ModifiedAt = now
		return true
	}
	return false
}

// Wallet returns the wallet a fund moving operation spends from.
func Wallet(t Transaction) (string, bool) {
	switch tx := t.(type) {
	case *Transfer:
		return tx.Wallet, true
	case *TransferQuorum:
		return tx.Wallet, true
	case *TransferLinked:
		return tx.Wallet, true
	case *TopUp:
		return tx.Wallet, true
	case *TopUpQuorum:
		return tx.Wallet, true
	}
	return "", false
}

// BlockedBy returns true if the earlier record prevents t from proceeding.
// Vault state operations wait for every earlier unfinished vault state
// operation. Fund moving operations additionally wait for earlier unfinished
// operations on the same wallet.
func BlockedBy(t, earlier Transaction) bool {
	c, e := t.Meta(), earlier.Meta()
	if e.ID >= c.ID || e.Status.Terminal() {
		return false
	}
	if kinds[t.Kind()].unblockable {
		return false
	}
	if e.VaultState {
		return true
	}
	if c.VaultState {
		return false
	}
	w, ok := Wallet(t)
	if !ok {
		return false
	}
	ew, ok := Wallet(earlier)
	return ok && ew == w
}

// Admit returns an error if a new record must be created already rejected.
// This is the case for an upgrade to a version that is not newer than the
// running one.
func Admit(t Transaction, running *semver.Version) error {
	up, ok := t.(*VersionUpgrade)
	if !ok {
		return nil
	}
	target, err := semver.NewVersion(up.Version)
	if err != nil {
		return errors.Field("Version", errors.ErrInput, "%s", err)
	}
	if !target.GreaterThan(running) {
		return errors.ErrInput.Newf("version %s is not newer than running %s", target, running)
	}
	return nil
}
