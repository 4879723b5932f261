package policy

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/iov-one/vault/x/state"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func members(admins, others int) []state.Member {
	var ms []state.Member
	for i := 0; i < admins; i++ {
		ms = append(ms, state.Member{ID: vaulttest.NewAddress(), Role: state.RoleAdmin})
	}
	for i := 0; i < others; i++ {
		ms = append(ms, state.Member{ID: vaulttest.NewAddress(), Role: state.RoleMember})
	}
	return ms
}

func TestResolve(t *testing.T) {
	cases := map[string]struct {
		policies  []state.Policy
		wallet    string
		amount    uint64
		wantUID   string
		wantCount uint32
		wantErr   *errors.Error
	}{
		"no policies": {
			wallet:  "w1",
			amount:  10,
			wantErr: errors.ErrCouldNotDefinePolicy,
		},
		"threshold is strict": {
			policies: []state.Policy{{UID: "p1", AmountThreshold: 10, MemberThreshold: 1}},
			wallet:   "w1",
			amount:   10,
			wantErr:  errors.ErrCouldNotDefinePolicy,
		},
		"other wallet only": {
			policies: []state.Policy{{UID: "p1", MemberThreshold: 1, Wallets: []string{"w2"}}},
			wallet:   "w1",
			amount:   10,
			wantErr:  errors.ErrCouldNotDefinePolicy,
		},
		"greatest amount wins": {
			policies: []state.Policy{
				{UID: "low", AmountThreshold: 0, MemberThreshold: 1},
				{UID: "high", AmountThreshold: 100, MemberThreshold: 2},
				{UID: "too high", AmountThreshold: 500, MemberThreshold: 3},
			},
			wallet:    "w1",
			amount:    150,
			wantUID:   "high",
			wantCount: 2,
		},
		"bound beats vault wide": {
			policies: []state.Policy{
				{UID: "wide", AmountThreshold: 100, MemberThreshold: 3},
				{UID: "bound", AmountThreshold: 100, MemberThreshold: 1, Wallets: []string{"w1"}},
			},
			wallet:    "w1",
			amount:    150,
			wantUID:   "bound",
			wantCount: 1,
		},
		"defined member threshold beats all members": {
			policies: []state.Policy{
				{UID: "all", AmountThreshold: 100},
				{UID: "defined", AmountThreshold: 100, MemberThreshold: 1},
			},
			wallet:    "w1",
			amount:    150,
			wantUID:   "defined",
			wantCount: 1,
		},
		"more approvers wins": {
			policies: []state.Policy{
				{UID: "two", AmountThreshold: 100, MemberThreshold: 2},
				{UID: "three", AmountThreshold: 100, MemberThreshold: 3},
			},
			wallet:    "w1",
			amount:    150,
			wantUID:   "three",
			wantCount: 3,
		},
		"first declared wins full tie": {
			policies: []state.Policy{
				{UID: "first", AmountThreshold: 100, MemberThreshold: 2},
				{UID: "second", AmountThreshold: 100, MemberThreshold: 2},
			},
			wallet:    "w1",
			amount:    150,
			wantUID:   "first",
			wantCount: 2,
		},
		"all members counts admins and members": {
			policies:  []state.Policy{{UID: "all"}},
			wallet:    "w1",
			amount:    1,
			wantUID:   "all",
			wantCount: 5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			st := &state.State{
				Quorum:   state.Quorum{Quorum: 2},
				Members:  members(2, 3),
				Policies: tc.policies,
			}
			p, n, err := Resolve(st, tc.wallet, tc.amount)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantUID, p.UID)
			assert.Equal(t, tc.wantCount, n)
		})
	}
}

func TestResolveProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	genPolicy := gopter.CombineGens(
		gen.UInt64Range(0, 1000),
		gen.UInt32Range(0, 5),
		gen.Bool(),
	).Map(func(v []interface{}) state.Policy {
		p := state.Policy{
			AmountThreshold: v[0].(uint64),
			MemberThreshold: v[1].(uint32),
			Currency:        "ICP",
		}
		if v[2].(bool) {
			p.Wallets = []string{"w1"}
		}
		return p
	})

	properties.Property("selected policy applies and has the greatest amount threshold", prop.ForAll(
		func(policies []state.Policy, amount uint64) bool {
			for i := range policies {
				policies[i].UID = string(rune('a' + i%26))
			}
			st := &state.State{Members: members(1, 1), Policies: policies}
			p, n, err := Resolve(st, "w1", amount)

			var found bool
			for _, c := range policies {
				if c.AmountThreshold < amount {
					found = true
					if c.AmountThreshold > p.AmountThreshold && err == nil {
						return false
					}
				}
			}
			if !found {
				return errors.ErrCouldNotDefinePolicy.Is(err)
			}
			if err != nil || p.AmountThreshold >= amount {
				return false
			}
			return n >= 1
		},
		gen.SliceOf(genPolicy),
		gen.UInt64Range(0, 1200),
	))

	properties.Property("resolution does not depend on unrelated wallets", prop.ForAll(
		func(policies []state.Policy, amount uint64) bool {
			st := &state.State{Members: members(1, 1), Policies: policies}
			p1, n1, err1 := Resolve(st, "w1", amount)

			noise := st.Copy()
			noise.Policies = append(noise.Policies, state.Policy{
				UID:             "noise",
				AmountThreshold: amount / 2,
				MemberThreshold: 9,
				Wallets:         []string{"w2"},
			})
			p2, n2, err2 := Resolve(noise, "w1", amount)
			if (err1 == nil) != (err2 == nil) {
				return false
			}
			return p1.UID == p2.UID && n1 == n2
		},
		gen.SliceOf(genPolicy),
		gen.UInt64Range(0, 1200),
	))

	properties.TestingRun(t)
}
