/*
Package policy determines how many approvals a policy governed transfer
requires.
*/
package policy

import (
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/state"
)

// Resolve selects the policy governing a transfer of amount from wallet and
// returns it together with the number of approvals it requires.
//
// Candidates are policies bound to the wallet or vault wide, with an amount
// threshold strictly below the amount. The candidate with the greatest amount
// threshold wins. Ties are broken in order by:
//   - a policy bound to the wallet beats a vault wide one,
//   - a policy with a defined member threshold beats an "all members" one,
//   - the policy requiring more approvals wins,
//   - the policy declared first wins.
//
// A policy without a member threshold requires every admin and member.
func Resolve(st *state.State, wallet string, amount uint64) (state.Policy, uint32, error) {
	all := st.Count(state.AllRoles)

	best := -1
	for i, p := range st.Policies {
		if !applies(p, wallet, amount) {
			continue
		}
		if best < 0 || better(p, st.Policies[best], wallet, all) {
			best = i
		}
	}
	if best < 0 {
		return state.Policy{}, 0, errors.ErrCouldNotDefinePolicy.Newf("wallet %q amount %d", wallet, amount)
	}
	p := st.Policies[best]
	return p, required(p, all), nil
}

func applies(p state.Policy, wallet string, amount uint64) bool {
	if p.AmountThreshold >= amount {
		return false
	}
	return p.VaultWide() || p.BoundTo(wallet)
}

// better returns true if p should be chosen over the current best. Equal
// policies return false so the earlier one is kept.
func better(p, cur state.Policy, wallet string, all uint32) bool {
	if p.AmountThreshold != cur.AmountThreshold {
		return p.AmountThreshold > cur.AmountThreshold
	}
	if pb, cb := p.BoundTo(wallet), cur.BoundTo(wallet); pb != cb {
		return pb
	}
	if pd, cd := p.MemberThreshold != 0, cur.MemberThreshold != 0; pd != cd {
		return pd
	}
	return required(p, all) > required(cur, all)
}

func required(p state.Policy, all uint32) uint32 {
	if p.MemberThreshold == 0 {
		return all
	}
	return p.MemberThreshold
}
