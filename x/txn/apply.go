package txn

import (
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/state"
)

// Apply performs the local mutation of an operation on st. It has no
// external effect and is used both when executing an operation and when
// replaying executed operations. Callers pass a copy so that a failure leaves
// the original untouched.
//
// Operations that do not mutate the configuration are a no-op.
func Apply(t Transaction, st *state.State) error {
	switch tx := t.(type) {
	case *MemberCreate:
		if st.Member(tx.Member) >= 0 {
			return errors.ErrMemberAlreadyExists.Newf("member %s", tx.Member)
		}
		st.Members = append(st.Members, state.Member{
			ID:   append([]byte(nil), tx.Member...),
			Name: tx.Name,
			Role: tx.Role,
		})
		return nil
	case *MemberRemove:
		i := st.Member(tx.Member)
		if i < 0 {
			return errors.ErrMemberNotExists.Newf("member %s", tx.Member)
		}
		st.Members = append(st.Members[:i], st.Members[i+1:]...)
		return checkQuorum(st)
	case *MemberRoleUpdate:
		i := st.Member(tx.Member)
		if i < 0 {
			return errors.ErrMemberNotExists.Newf("member %s", tx.Member)
		}
		st.Members[i].Role = tx.Role
		return checkQuorum(st)
	case *MemberNameUpdate:
		i := st.Member(tx.Member)
		if i < 0 {
			return errors.ErrMemberNotExists.Newf("member %s", tx.Member)
		}
		st.Members[i].Name = tx.Name
		return nil
	case *MemberExtendAccount:
		i := st.Member(tx.Member)
		if i < 0 {
			return errors.ErrMemberNotExists.Newf("member %s", tx.Member)
		}
		if st.Members[i].Account != "" {
			return errors.ErrMemberAlreadyExists.Newf("member %s already has an account", tx.Member)
		}
		st.Members[i].Account = tx.Account
		return nil
	case *WalletCreate:
		if st.Wallet(tx.UID) >= 0 || st.Policy(tx.UID) >= 0 {
			return errors.ErrUIDAlreadyExists.Newf("uid %q", tx.UID)
		}
		st.Wallets = append(st.Wallets, state.Wallet{UID: tx.UID, Name: tx.Name, Network: tx.Network})
		return nil
	case *WalletUpdateName:
		i := st.Wallet(tx.UID)
		if i < 0 {
			return errors.ErrWalletNotExists.Newf("wallet %q", tx.UID)
		}
		st.Wallets[i].Name = tx.Name
		return nil
	case *PolicyCreate:
		if st.Policy(tx.UID) >= 0 || st.Wallet(tx.UID) >= 0 {
			return errors.ErrUIDAlreadyExists.Newf("uid %q", tx.UID)
		}
		p := tx.policy()
		for _, w := range p.Wallets {
			if st.Wallet(w) < 0 {
				return errors.ErrWalletNotExists.Newf("wallet %q", w)
			}
		}
		if st.ThresholdTaken(p) {
			return errors.ErrThresholdAlreadyExists.Newf("amount threshold %d", p.AmountThreshold)
		}
		st.Policies = append(st.Policies, p)
		return nil
	case *PolicyUpdate:
		i := st.Policy(tx.UID)
		if i < 0 {
			return errors.ErrPolicyNotExists.Newf("policy %q", tx.UID)
		}
		p := st.Policies[i]
		p.AmountThreshold = tx.AmountThreshold
		p.MemberThreshold = tx.MemberThreshold
		if st.ThresholdTaken(p) {
			return errors.ErrThresholdAlreadyExists.Newf("amount threshold %d", p.AmountThreshold)
		}
		st.Policies[i] = p
		return nil
	case *PolicyRemove:
		i := st.Policy(tx.UID)
		if i < 0 {
			return errors.ErrPolicyNotExists.Newf("policy %q", tx.UID)
		}
		st.Policies = append(st.Policies[:i], st.Policies[i+1:]...)
		return nil
	case *QuorumUpdate:
		if tx.Quorum == 0 {
			return errors.ErrQuorumNotReachable.New("quorum must be greater than zero")
		}
		if admins := st.Admins(); tx.Quorum > admins {
			return errors.ErrQuorumNotReachable.Newf("quorum %d with %d admins", tx.Quorum, admins)
		}
		st.Quorum = state.Quorum{Quorum: tx.Quorum, ModifiedAt: tx.ModifiedAt}
		return nil
	case *VaultNamingUpdate:
		st.Name = tx.Name
		st.Description = tx.Description
		return nil
	case *LedgerAdd:
		if i := st.Ledger(tx.Ledger); i >= 0 {
			st.Ledgers[i].Index = tx.Index
			return nil
		}
		st.Ledgers = append(st.Ledgers, state.Ledger{Ledger: tx.Ledger, Index: tx.Index})
		return nil
	case *LedgerRemove:
		kept := st.Ledgers[:0]
		for _, l := range st.Ledgers {
			if l.Ledger != tx.Ledger {
				kept = append(kept, l)
			}
		}
		st.Ledgers = kept
		return nil
	case *VersionUpgrade, *Purge, *ControllersUpdate,
		*Transfer, *TransferQuorum, *TransferLinked, *TopUp, *TopUpQuorum:
		return nil
	default:
		return errors.ErrUnknownOperation.Newf("%T", t)
	}
}

func checkQuorum(st *state.State) error {
	if admins := st.Admins(); admins < st.Quorum.Quorum {
		return errors.ErrQuorumNotReachable.Newf("%d admins left with quorum %d", admins, st.Quorum.Quorum)
	}
	return nil
}
