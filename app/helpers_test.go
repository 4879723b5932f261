package app

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/store/iavl"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/x/state"
	"github.com/iov-one/vault/x/transfer/transfertest"
	"github.com/iov-one/vault/x/txn"
)

var (
	alice = vaulttest.Principal("alice")
	bob   = vaulttest.Principal("bob")
	carol = vaulttest.Principal("carol")
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// as returns a context of a request made by given caller.
func as(caller vault.Address) context.Context {
	ctx := vault.WithBlockTime(context.Background(), now)
	return vault.WithCaller(ctx, caller)
}

type fixture struct {
	engine   *Engine
	db       *iavl.CommitStore
	executor *transfertest.Executor
	platform *transfertest.Platform
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:       iavl.NewMemCommitStore(),
		executor: &transfertest.Executor{},
		platform: &transfertest.Platform{},
	}
	f.engine = f.open()
	return f
}

// open returns a new engine on the fixture store.
func (f *fixture) open() *Engine {
	return NewEngine(f.db, f.executor, f.platform, WithRunningVersion(semver.MustParse("1.0.0")))
}

// get returns the current value of an operation.
func (f *fixture) get(id uint64) txn.Transaction {
	t, err := f.engine.Get(id)
	if err != nil {
		panic(err)
	}
	return t
}

func admins(ids ...vault.Address) []state.Member {
	ms := make([]state.Member, len(ids))
	for i, id := range ids {
		ms[i] = state.Member{ID: id, Name: id.String(), Role: state.RoleAdmin}
	}
	return ms
}
