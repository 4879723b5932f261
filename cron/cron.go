package cron

import (
	"context"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// DefaultPeriod is the number of ticks between two runs.
const DefaultPeriod = 30

// Runner is a background task executed by the ticker.
type Runner interface {
	Run(ctx context.Context, db vault.KVStore) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, db vault.KVStore) error

// Run implements Runner.
func (fn RunnerFunc) Run(ctx context.Context, db vault.KVStore) error {
	return fn(ctx, db)
}

// Ticker counts heartbeats and executes the runner every period ticks. The
// tick counter is kept in the database so that it survives a restart.
type Ticker struct {
	period uint64
	runner Runner
	ticks  orm.Sequence
}

// NewTicker returns a ticker calling given runner every period ticks. Zero
// period falls back to DefaultPeriod.
func NewTicker(period uint64, r Runner) *Ticker {
	if period == 0 {
		period = DefaultPeriod
	}
	return &Ticker{
		period: period,
		runner: r,
		ticks:  orm.NewSequence("cron", "ticks"),
	}
}

// Tick registers a single heartbeat. It returns true when the runner was
// executed during this tick.
//
// The runner is executed on its own cache. All changes are written only on
// success, a failing run leaves the database untouched apart from the tick
// counter.
func (t *Ticker) Tick(ctx context.Context, db vault.CacheableKVStore) (bool, error) {
	n, err := t.ticks.NextInt(db)
	if err != nil {
		return false, errors.Wrap(err, "tick counter")
	}
	if n%t.period != 0 {
		return false, nil
	}

	log := vault.GetLogger(ctx).With("module", "cron")
	cache := db.CacheWrap()
	if err := t.runner.Run(ctx, cache); err != nil {
		cache.Discard()
		log.Error("scheduled run failed", "tick", n, "err", err)
		return false, errors.Wrap(err, "run")
	}
	if err := cache.Write(); err != nil {
		return false, errors.Wrap(err, "cannot write run cache")
	}
	log.Debug("scheduled run", "tick", n)
	return true, nil
}

// Count returns the number of ticks registered so far.
func (t *Ticker) Count(db vault.ReadOnlyKVStore) (uint64, error) {
	return t.ticks.Latest(db)
}
