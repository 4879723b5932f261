package projection

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/iov-one/vault/x/state"
	"github.com/iov-one/vault/x/txn"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var alice = vaulttest.Principal("alice")

func executed(t testing.TB, id uint64, req txn.Request) txn.Transaction {
	t.Helper()
	tx, err := txn.New(req, txn.Common{ID: id, Initiator: alice})
	if err != nil {
		t.Fatalf("cannot create: %s", err)
	}
	tx.Meta().Finish(txn.StatusExecuted, nil, vault.UnixTime(id))
	return tx
}

func history(t testing.TB) []txn.Transaction {
	bob := vaulttest.Principal("bob")
	failed := executed(t, 5, &txn.WalletCreateRequest{UID: "ignored"})
	failed.Meta().Finish(txn.StatusFailed, errors.ErrState, 5)

	return []txn.Transaction{
		executed(t, 1, &txn.MemberCreateRequest{Member: alice, Name: "alice", Role: state.RoleAdmin}),
		executed(t, 2, &txn.QuorumUpdateRequest{Quorum: 1}),
		executed(t, 3, &txn.WalletCreateRequest{UID: "w1", Name: "main"}),
		executed(t, 4, &txn.TransferRequest{Wallet: "w1", Currency: "ICP", Address: "ab", Amount: 1}),
		failed,
		executed(t, 6, &txn.MemberCreateRequest{Member: bob, Name: "bob", Role: state.RoleMember}),
		executed(t, 7, &txn.LedgerAddRequest{Ledger: "ckbtc", Index: "idx"}),
	}
}

func TestReplay(t *testing.T) {
	records := history(t)

	st, err := Replay(records, 0)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(st.Members))
	assert.Equal(t, uint32(1), st.Quorum.Quorum)
	assert.Equal(t, []state.Wallet{{UID: "w1", Name: "main"}}, st.Wallets)
	assert.Equal(t, 1, len(st.Ledgers))

	st, err = Replay(records, 3)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(st.Members))
	assert.Equal(t, 0, len(st.Ledgers))

	// Order of the input does not matter.
	reversed := make([]txn.Transaction, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	a, err := Replay(records, 0)
	assert.Nil(t, err)
	b, err := Replay(reversed, 0)
	assert.Nil(t, err)
	assert.Equal(t, a, b)
}

func TestReplayBrokenHistory(t *testing.T) {
	records := []txn.Transaction{
		executed(t, 1, &txn.MemberRemoveRequest{Member: alice}),
	}
	_, err := Replay(records, 0)
	assert.IsErr(t, errors.ErrMemberNotExists, err)
}

func TestRollback(t *testing.T) {
	records := history(t)
	// Batch 3 and 6 failed together.
	records[2].Meta().Finish(txn.StatusFailed, errors.ErrState, 9)
	records[5].Meta().Finish(txn.StatusFailed, errors.ErrState, 9)

	st, invalidated, err := Rollback(records, 3, 9)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(invalidated))
	assert.Equal(t, 1, len(st.Members))
	assert.Equal(t, 0, len(st.Wallets))
	assert.Equal(t, 1, len(st.Ledgers))

	full, err := Replay(records, 0)
	assert.Nil(t, err)
	assert.Equal(t, full, st)
}

func TestRollbackInvalidatesDependents(t *testing.T) {
	records := history(t)
	// Wallet w1 is rolled back, renaming it later cannot apply anymore.
	rename := executed(t, 8, &txn.WalletUpdateNameRequest{UID: "w1", Name: "renamed"})
	records = append(records, rename)
	records[2].Meta().Finish(txn.StatusFailed, errors.ErrState, 9)

	st, invalidated, err := Rollback(records, 3, 9)
	assert.Nil(t, err)
	assert.Equal(t, []txn.Transaction{rename}, invalidated)
	assert.Equal(t, txn.StatusFailed, rename.Meta().Status)
	assert.IsErr(t, errors.ErrWalletNotExists, rename.Meta().Failure.Err())
	assert.Equal(t, 0, len(st.Wallets))

	full, err := Replay(records, 0)
	assert.Nil(t, err)
	assert.Equal(t, full, st)
}

// TestReplayMatchesIncrementalExecution checks that executing operations one
// by one yields the same configuration as a replay of the history.
func TestReplayMatchesIncrementalExecution(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	properties := gopter.NewProperties(params)

	genOp := gen.IntRange(0, 5)

	properties.Property("replay equals live state", prop.ForAll(
		func(ops []int) bool {
			ctx := context.Background()
			live := state.New()
			var records []txn.Transaction
			members := []vault.Address{alice}

			for i, op := range ops {
				id := uint64(i + 1)
				var req txn.Request
				switch op {
				case 0:
					addr := vaulttest.NewAddress()
					members = append(members, addr)
					req = &txn.MemberCreateRequest{Member: addr, Role: state.RoleAdmin}
				case 1:
					req = &txn.MemberRemoveRequest{Member: members[i%len(members)]}
				case 2:
					req = &txn.QuorumUpdateRequest{Quorum: uint32(i % 3)}
				case 3:
					req = &txn.WalletCreateRequest{UID: string(rune('a' + i%4))}
				case 4:
					req = &txn.PolicyCreateRequest{UID: string(rune('p' + i%4)), AmountThreshold: uint64(i % 3), Currency: "ICP"}
				case 5:
					req = &txn.LedgerAddRequest{Ledger: string(rune('l' + i%2)), Index: "x"}
				}
				tx, err := txn.New(req, txn.Common{ID: id})
				if err != nil {
					return false
				}
				tx.Meta().Status = txn.StatusApproved
				live = txn.Execute(ctx, txn.Env{}, tx, live, vault.UnixTime(id))
				records = append(records, tx)
			}

			replayed, err := Replay(records, 0)
			if err != nil {
				return false
			}
			return assertEqualState(live, replayed)
		},
		gen.SliceOf(genOp),
	))

	properties.TestingRun(t)
}

func assertEqualState(a, b *state.State) bool {
	if a.Quorum != b.Quorum || a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if len(a.Members) != len(b.Members) || len(a.Wallets) != len(b.Wallets) ||
		len(a.Policies) != len(b.Policies) || len(a.Ledgers) != len(b.Ledgers) {
		return false
	}
	for i := range a.Members {
		if !a.Members[i].ID.Equals(b.Members[i].ID) || a.Members[i].Role != b.Members[i].Role {
			return false
		}
	}
	for i := range a.Wallets {
		if a.Wallets[i] != b.Wallets[i] {
			return false
		}
	}
	for i := range a.Policies {
		if a.Policies[i].UID != b.Policies[i].UID || a.Policies[i].AmountThreshold != b.Policies[i].AmountThreshold {
			return false
		}
	}
	for i := range a.Ledgers {
		if a.Ledgers[i] != b.Ledgers[i] {
			return false
		}
	}
	return true
}
