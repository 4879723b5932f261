package app

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/state"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestParseGenesis(t *testing.T) {
	g, err := ParseGenesis([]byte(`
conf:
  vault:
    name: treasury
admins:
  - id: principal:alice
    name: alice
    role: admin
  - id: principal:bob
    name: bob
    role: admin
quorum: 2
wallets:
  - uid: w1
    name: main
    network: ICP
policies:
  - uid: p1
    amount_threshold: 100
    member_threshold: 1
    currency: ICP
    wallets: [w1]
`))
	assert.Nil(t, err)
	assert.Nil(t, g.Validate())
	assert.Equal(t, 2, len(g.Admins))
	assert.Equal(t, alice, g.Admins[0].ID)
	assert.Equal(t, state.RoleAdmin, g.Admins[1].Role)
	assert.Equal(t, uint64(100), g.Policies[0].AmountThreshold)

	f := newFixture(t)
	assert.Nil(t, f.engine.Init(as(alice), g))
	assert.Equal(t, "treasury", f.engine.Config().Name)

	// Two members, quorum, wallet, policy and naming.
	assert.Equal(t, 6, len(f.engine.History()))
	st, err := f.engine.State(0)
	assert.Nil(t, err)
	assert.Equal(t, "treasury", st.Name)
	assert.Equal(t, uint32(2), st.Quorum.Quorum)
}

func TestParseGenesisUnknownField(t *testing.T) {
	_, err := ParseGenesis([]byte("admins: []\nquorum: 1\nextra: true\n"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestGenesisValidate(t *testing.T) {
	cases := map[string]struct {
		g    Genesis
		want *errors.Error
	}{
		"valid": {
			g: Genesis{Admins: admins(alice), Quorum: 1},
		},
		"no admins": {
			g:    Genesis{Quorum: 1},
			want: errors.ErrEmpty,
		},
		"zero quorum": {
			g:    Genesis{Admins: admins(alice), Quorum: 0},
			want: errors.ErrQuorumNotReachable,
		},
		"quorum above admins": {
			g:    Genesis{Admins: admins(alice, bob), Quorum: 3},
			want: errors.ErrQuorumNotReachable,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.g.Validate()
			if tc.want == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.want, err)
		})
	}
}

func TestInitRejectsBrokenGenesis(t *testing.T) {
	f := newFixture(t)
	g := &Genesis{
		Admins:   admins(alice),
		Quorum:   1,
		Policies: []state.Policy{{UID: "p1", AmountThreshold: 1, Currency: "ICP", Wallets: []string{"nope"}}},
	}
	err := f.engine.Init(as(alice), g)
	assert.IsErr(t, errors.ErrWalletNotExists, err)
	assert.Equal(t, 0, len(f.engine.History()))
}
