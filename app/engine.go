package app

import (
	"context"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/cron"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x/projection"
	"github.com/iov-one/vault/x/state"
	"github.com/iov-one/vault/x/transfer"
	"github.com/iov-one/vault/x/txn"
)

// Engine owns the operation registry and the projected vault configuration.
// See the package documentation for the concurrency requirements.
type Engine struct {
	db      vault.CommitKVStore
	deliver vault.KVCacheWrap

	txns      orm.Bucket
	snapshots orm.Bucket
	ids       orm.Sequence

	env     txn.Env
	running *semver.Version
	ticker  *cron.Ticker
	conf    Config

	// records are sorted by id.
	records []txn.Transaction
	// state is the live configuration. It always equals a full replay of
	// records.
	state *state.State
}

// Option configures an Engine.
type Option func(*Engine)

// WithRunningVersion overrides the version upgrade operations are compared
// against. It defaults to vault.RunningVersion.
func WithRunningVersion(v *semver.Version) Option {
	return func(e *Engine) {
		e.running = v
	}
}

// NewEngine returns an engine on top of given store. Call Init for a new
// vault or Resume to load a suspended one.
func NewEngine(db vault.CommitKVStore, exec transfer.Executor, platform transfer.Platform, opts ...Option) *Engine {
	e := &Engine{
		db:        db,
		deliver:   db.CacheWrap(),
		txns:      orm.NewBucket("txn", cdc),
		snapshots: orm.NewBucket("snap", cdc),
		ids:       orm.NewSequence("txn", "id"),
		running:   vault.RunningVersion(),
		state:     state.New(),
	}
	e.env = txn.Env{Executor: exec, Platform: platform, Registry: e}
	e.setConfig(DefaultConfig())
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) setConfig(c Config) {
	e.conf = c
	e.env.Ledger = c.LedgerID
	e.ticker = cron.NewTicker(c.tickPeriod(), cron.RunnerFunc(e.run))
}

// Config returns the current engine configuration.
func (e *Engine) Config() Config {
	return e.conf
}

// SetConfig validates and stores a new configuration.
func (e *Engine) SetConfig(ctx context.Context, c Config) error {
	if err := gconf.Save(e.deliver, ConfigPackage, &c); err != nil {
		return err
	}
	e.setConfig(c)
	vault.GetLogger(ctx).With("module", "engine").Info("configuration updated", "tick_period", c.tickPeriod())
	return nil
}

// Submit creates operations without a batch. See SubmitBatch.
func (e *Engine) Submit(ctx context.Context, reqs ...txn.Request) ([]txn.Transaction, error) {
	return e.SubmitBatch(ctx, "", reqs...)
}

// SubmitBatch creates one operation per request on behalf of the caller set
// in the context, records the caller approval and runs an execution pass.
// A non empty batchID groups the operations so that they either all succeed
// or all fail.
//
// Invalid requests and a caller not allowed to submit any of them fail the
// whole call and nothing is created.
func (e *Engine) SubmitBatch(ctx context.Context, batchID string, reqs ...txn.Request) ([]txn.Transaction, error) {
	caller, ok := vault.GetCaller(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	if len(reqs) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no requests")
	}
	for i, r := range reqs {
		if r == nil || !r.Kind().Valid() {
			return nil, errors.ErrUnknownOperation.Newf("request %d", i)
		}
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "request %d", i)
		}
		if !e.state.Eligible(caller, r.Kind().AcceptedRoles()) {
			return nil, errors.ErrUnauthorized.Newf("%s cannot submit %s", caller, r.Kind())
		}
	}

	log := vault.GetLogger(ctx).With("module", "engine")
	now := vault.Now(ctx)
	cache := e.deliver.CacheWrap()
	created := make([]txn.Transaction, 0, len(reqs))
	for _, r := range reqs {
		id, err := e.ids.NextInt(cache)
		if err != nil {
			cache.Discard()
			return nil, errors.Wrap(err, "next id")
		}
		t, err := txn.New(r, txn.Common{
			ID:         id,
			Initiator:  caller,
			CreatedAt:  now,
			ModifiedAt: now,
			BatchID:    batchID,
		})
		if err != nil {
			cache.Discard()
			return nil, err
		}
		created = append(created, t)
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write ids")
	}

	for _, t := range created {
		c := t.Meta()
		if err := txn.Admit(t, e.running); err != nil {
			c.Finish(txn.StatusRejected, err, now)
		} else {
			if e.blocked(t) {
				c.Status = txn.StatusBlocked
			}
			if err := c.AddVote(txn.Vote{Voter: caller, Time: now, Value: txn.Approve}); err != nil {
				return nil, err
			}
		}
		e.records = append(e.records, t)
		log.Info("operation submitted", "id", c.ID, "kind", t.Kind(), "status", c.Status, "batch", c.BatchID)
	}

	err := e.Execute(ctx)
	return e.copies(created), err
}

// VoteRequest is a caller decision on an operation.
type VoteRequest struct {
	ID       uint64       `yaml:"id"`
	Decision txn.Decision `yaml:"decision"`
}

// Vote records the caller decisions and runs an execution pass. A new vote of
// the same caller replaces the previous one.
//
// Voting on an unknown or finished operation, or on an operation the caller
// role is not allowed to vote on, fails the whole call.
func (e *Engine) Vote(ctx context.Context, votes ...VoteRequest) ([]txn.Transaction, error) {
	caller, ok := vault.GetCaller(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}

	targets := make([]txn.Transaction, 0, len(votes))
	for _, v := range votes {
		t := e.find(v.ID)
		if t == nil {
			return nil, errors.ErrUnknownOperation.Newf("operation %d", v.ID)
		}
		if s := t.Meta().Status; s.Terminal() {
			return nil, errors.ErrImmutable.Newf("operation %d is %s", v.ID, s)
		}
		if !e.state.Eligible(caller, t.Kind().AcceptedRoles()) {
			return nil, errors.ErrUnauthorized.Newf("%s cannot vote on %s", caller, t.Kind())
		}
		if v.Decision != txn.Approve && v.Decision != txn.Reject {
			return nil, errors.Field("Decision", errors.ErrInput, "operation %d", v.ID)
		}
		targets = append(targets, t)
	}

	log := vault.GetLogger(ctx).With("module", "engine")
	now := vault.Now(ctx)
	for i, t := range targets {
		c := t.Meta()
		if err := c.AddVote(txn.Vote{Voter: caller, Time: now, Value: votes[i].Decision}); err != nil {
			return nil, err
		}
		c.ModifiedAt = now
		log.Info("vote", "id", c.ID, "voter", caller, "decision", votes[i].Decision)
	}

	err := e.Execute(ctx)
	return e.copies(targets), err
}

// History returns a copy of all operations in ascending id order.
func (e *Engine) History() []txn.Transaction {
	return e.copies(e.records)
}

// Get returns a copy of the operation with given id.
func (e *Engine) Get(id uint64) (txn.Transaction, error) {
	if t := e.find(id); t != nil {
		return txn.Copy(t), nil
	}
	return nil, errors.ErrUnknownOperation.Newf("operation %d", id)
}

// copies returns the current value of given records. Records are looked up
// by id because an execution pass that fails restores the registry.
func (e *Engine) copies(ts []txn.Transaction) []txn.Transaction {
	res := make([]txn.Transaction, 0, len(ts))
	for _, t := range ts {
		if cur := e.find(t.Meta().ID); cur != nil {
			t = cur
		}
		res = append(res, txn.Copy(t))
	}
	return res
}

// State returns the vault configuration. Zero upTo returns the current
// configuration, otherwise the configuration right after operation upTo is
// rebuilt from the history.
func (e *Engine) State(upTo uint64) (*state.State, error) {
	if upTo == 0 {
		return e.state.Copy(), nil
	}
	return projection.Replay(e.records, upTo)
}

func (e *Engine) find(id uint64) txn.Transaction {
	i := sort.Search(len(e.records), func(i int) bool {
		return e.records[i].Meta().ID >= id
	})
	if i < len(e.records) && e.records[i].Meta().ID == id {
		return e.records[i]
	}
	return nil
}

// blocked returns true if any other record blocks t.
func (e *Engine) blocked(t txn.Transaction) bool {
	for _, o := range e.records {
		if o.Meta().ID >= t.Meta().ID {
			break
		}
		if txn.BlockedBy(t, o) {
			return true
		}
	}
	return false
}
