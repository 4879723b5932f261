package state

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"gopkg.in/yaml.v3"
)

func TestCopyIsDeep(t *testing.T) {
	alice := vaulttest.Principal("alice")
	orig := &State{
		Quorum:   Quorum{Quorum: 1},
		Members:  []Member{{ID: alice, Name: "alice", Role: RoleAdmin}},
		Wallets:  []Wallet{{UID: "w1", Name: "main"}},
		Policies: []Policy{{UID: "p1", Currency: "ICP", Wallets: []string{"w1"}}},
		Ledgers:  []Ledger{{Ledger: "l1", Index: "i1"}},
	}

	c := orig.Copy()
	assert.Equal(t, orig, c)

	c.Members[0].Role = RoleMember
	c.Members[0].ID[0] ^= 0xff
	c.Policies[0].Wallets[0] = "w2"
	c.Wallets = append(c.Wallets, Wallet{UID: "w3"})
	c.Ledgers[0].Index = "changed"

	assert.Equal(t, RoleAdmin, orig.Members[0].Role)
	assert.Equal(t, vaulttest.Principal("alice"), orig.Members[0].ID)
	assert.Equal(t, "w1", orig.Policies[0].Wallets[0])
	assert.Equal(t, 1, len(orig.Wallets))
	assert.Equal(t, "i1", orig.Ledgers[0].Index)
}

func TestCount(t *testing.T) {
	s := &State{
		Members: []Member{
			{ID: vaulttest.Principal("a"), Role: RoleAdmin},
			{ID: vaulttest.Principal("b"), Role: RoleAdmin},
			{ID: vaulttest.Principal("c"), Role: RoleMember},
		},
	}
	assert.Equal(t, uint32(2), s.Admins())
	assert.Equal(t, uint32(3), s.Count(AllRoles))
	assert.Equal(t, true, s.Eligible(vaulttest.Principal("c"), AllRoles))
	assert.Equal(t, false, s.Eligible(vaulttest.Principal("c"), AdminRoles))
	assert.Equal(t, false, s.Eligible(vaulttest.Principal("x"), AllRoles))
}

func TestThresholdTaken(t *testing.T) {
	s := &State{
		Policies: []Policy{
			{UID: "p1", AmountThreshold: 10, Currency: "ICP", Wallets: []string{"w1"}},
			{UID: "p2", AmountThreshold: 20, Currency: "ICP"},
		},
	}
	cases := map[string]struct {
		policy Policy
		want   bool
	}{
		"same wallet": {
			policy: Policy{UID: "x", AmountThreshold: 10, Wallets: []string{"w1", "w2"}},
			want:   true,
		},
		"other wallet": {
			policy: Policy{UID: "x", AmountThreshold: 10, Wallets: []string{"w2"}},
			want:   false,
		},
		"vault wide collides with bound": {
			policy: Policy{UID: "x", AmountThreshold: 10},
			want:   true,
		},
		"bound collides with vault wide": {
			policy: Policy{UID: "x", AmountThreshold: 20, Wallets: []string{"w9"}},
			want:   true,
		},
		"itself": {
			policy: Policy{UID: "p2", AmountThreshold: 20},
			want:   false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, s.ThresholdTaken(tc.policy))
		})
	}
}

func TestValidate(t *testing.T) {
	alice := vaulttest.Principal("alice")
	cases := map[string]struct {
		state *State
		err   *errors.Error
	}{
		"empty": {
			state: New(),
		},
		"quorum above admins": {
			state: &State{
				Quorum:  Quorum{Quorum: 2},
				Members: []Member{{ID: alice, Role: RoleAdmin}},
			},
			err: errors.ErrQuorumNotReachable,
		},
		"duplicated member": {
			state: &State{
				Members: []Member{{ID: alice, Role: RoleAdmin}, {ID: alice, Role: RoleMember}},
			},
			err: errors.ErrMemberAlreadyExists,
		},
		"wallet and policy share uid": {
			state: &State{
				Wallets:  []Wallet{{UID: "x"}},
				Policies: []Policy{{UID: "x", Currency: "ICP"}},
			},
			err: errors.ErrUIDAlreadyExists,
		},
		"invalid role": {
			state: &State{
				Members: []Member{{ID: alice, Role: Role(7)}},
			},
			err: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.state.Validate()
			if tc.err == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.err, err)
		})
	}
}

func TestMemberFromYAML(t *testing.T) {
	const doc = `
id: principal:alice
name: Alice
role: admin
`
	var m Member
	assert.Nil(t, yaml.Unmarshal([]byte(doc), &m))
	assert.Equal(t, Member{ID: vaulttest.Principal("alice"), Name: "Alice", Role: RoleAdmin}, m)

	assert.Nil(t, m.Validate())
	assert.FieldError(t, Member{Role: RoleAdmin}.Validate(), "ID", errors.ErrInput)
}
