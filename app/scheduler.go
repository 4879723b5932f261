package app

import (
	"context"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/projection"
	"github.com/iov-one/vault/x/txn"
	"github.com/tendermint/tendermint/libs/log"
)

// Execute drives every unfinished operation as far as it can go and persists
// the result. Records are visited in ascending id order. The scan is repeated
// until a pass makes no change.
func (e *Engine) Execute(ctx context.Context) error {
	cache := e.deliver.CacheWrap()
	if err := e.run(ctx, cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

// Tick registers a heartbeat. Every configured number of ticks an execution
// pass is run.
func (e *Engine) Tick(ctx context.Context) error {
	_, err := e.ticker.Tick(ctx, e.deliver)
	return err
}

// run executes operations to a fixed point and writes the registry to db.
// On failure the registry and the configuration are restored to their value
// before the run.
func (e *Engine) run(ctx context.Context, db vault.KVStore) (err error) {
	restore := e.checkpoint()
	defer func() {
		if err != nil {
			restore()
		}
	}()
	defer errors.Recover(&err)

	logger := vault.GetLogger(ctx).With("module", "scheduler")
	start := time.Now()
	now := vault.Now(ctx)

	passes := 0
	for {
		passes++
		changed, err := e.pass(ctx, logger, now)
		if err != nil {
			return err
		}
		if !changed {
			break
		}
	}
	logger.Debug("execution finished", "passes", passes, "duration", time.Since(start))
	return e.persist(db)
}

// pass visits every record once. It returns true if any record changed. A
// batch rollback ends the pass early so that the scan restarts from the
// lowest id.
func (e *Engine) pass(ctx context.Context, logger log.Logger, now vault.UnixTime) (bool, error) {
	changed := false
	for i, t := range e.records {
		c := t.Meta()
		if from := c.Status; !from.Terminal() {
			if txn.DefineState(t, e.state, e.blockedAt(i), now) {
				changed = true
			}
			if c.Status == txn.StatusApproved {
				e.state = txn.Execute(ctx, e.env, t, e.state, now)
				e.afterExecute(t)
				changed = true
			}
			if c.Status != from {
				logTransition(logger, t, from)
			}
		}

		rolled, err := e.settleBatch(logger, t, now)
		if err != nil {
			return false, err
		}
		if rolled {
			return true, nil
		}
	}
	return changed, nil
}

// checkpoint returns a function putting the registry and the configuration
// back to their current value.
func (e *Engine) checkpoint() func() {
	records := make([]txn.Transaction, len(e.records))
	for i, t := range e.records {
		records[i] = txn.Copy(t)
	}
	st, conf := e.state, e.conf
	return func() {
		e.records = records
		e.state = st
		e.conf = conf
	}
}

func logTransition(logger log.Logger, t txn.Transaction, from txn.Status) {
	c := t.Meta()
	if c.Failure.IsZero() {
		logger.Info("transition", "id", c.ID, "kind", t.Kind(), "from", from, "to", c.Status)
		return
	}
	logger.Error("transition", "id", c.ID, "kind", t.Kind(), "from", from, "to", c.Status, "err", c.Failure.Message)
}

func (e *Engine) blockedAt(i int) bool {
	t := e.records[i]
	for _, o := range e.records[:i] {
		if txn.BlockedBy(t, o) {
			return true
		}
	}
	return false
}

// afterExecute keeps the engine configuration in sync with executed
// operations having an effect outside of the vault state.
func (e *Engine) afterExecute(t txn.Transaction) {
	if cu, ok := t.(*txn.ControllersUpdate); ok && cu.Status == txn.StatusExecuted {
		e.conf.Controllers = append([]string(nil), cu.Principals...)
	}
}

// settleBatch forces every member of the batch of a failed or rejected
// record into the same status and rolls the configuration back to the
// snapshot preceding the first member of the batch. Members that already
// ended Failed, Rejected or Purged keep their status.
//
// It returns true if anything was changed.
func (e *Engine) settleBatch(logger log.Logger, t txn.Transaction, now vault.UnixTime) (bool, error) {
	c := t.Meta()
	if c.BatchID == "" || (c.Status != txn.StatusFailed && c.Status != txn.StatusRejected) {
		return false, nil
	}

	cause := c.Failure.Err()
	if cause == nil {
		cause = errors.ErrState
	}

	var first uint64
	changed := false
	for _, o := range e.records {
		oc := o.Meta()
		if oc.BatchID != c.BatchID {
			continue
		}
		if first == 0 || oc.ID < first {
			first = oc.ID
		}
		switch oc.Status {
		case txn.StatusFailed, txn.StatusRejected, txn.StatusPurged:
			continue
		}
		from := oc.Status
		oc.Finish(c.Status, errors.Wrapf(cause, "batch %q failed on operation %d", c.BatchID, c.ID), now)
		logTransition(logger, o, from)
		changed = true
	}
	if !changed {
		return false, nil
	}

	st, invalidated, err := projection.Rollback(e.records, first, now)
	if err != nil {
		return false, errors.Wrapf(err, "rollback batch %q", c.BatchID)
	}
	for _, o := range invalidated {
		logTransition(logger, o, txn.StatusExecuted)
	}
	e.state = st
	logger.Info("batch rolled back", "batch", c.BatchID, "first", first, "invalidated", len(invalidated))
	return true, nil
}

// Purge implements txn.Registry.
func (e *Engine) Purge(ctx context.Context, except uint64, now vault.UnixTime) int {
	n := 0
	for _, t := range e.records {
		c := t.Meta()
		if c.ID == except || c.Status.Terminal() {
			continue
		}
		c.Finish(txn.StatusPurged, nil, now)
		n++
	}
	vault.GetLogger(ctx).With("module", "scheduler").Info("purged", "by", except, "count", n)
	return n
}
