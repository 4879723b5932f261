package app

import (
	"context"
	"sort"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/x/projection"
	"github.com/iov-one/vault/x/state"
	"github.com/iov-one/vault/x/txn"
)

var currentSnapshot = []byte("current")

// persist writes the registry, the configuration snapshot and the engine
// config to db.
func (e *Engine) persist(db vault.KVStore) error {
	for _, t := range e.records {
		if err := e.txns.Put(db, orm.EncodeSequence(t.Meta().ID), t); err != nil {
			return errors.Wrapf(err, "operation %d", t.Meta().ID)
		}
	}
	if err := e.snapshots.Put(db, currentSnapshot, e.state); err != nil {
		return errors.Wrap(err, "snapshot")
	}
	if err := gconf.Save(db, ConfigPackage, &e.conf); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}

// Suspend persists the whole engine and commits a new version of the store.
func (e *Engine) Suspend(ctx context.Context) (store.CommitID, error) {
	cache := e.deliver.CacheWrap()
	if err := e.persist(cache); err != nil {
		cache.Discard()
		return store.CommitID{}, err
	}
	if err := cache.Write(); err != nil {
		return store.CommitID{}, errors.Wrap(err, "cannot write snapshot")
	}
	if err := e.deliver.Write(); err != nil {
		return store.CommitID{}, errors.Wrap(err, "cannot flush")
	}
	id, err := e.db.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	vault.GetLogger(ctx).With("module", "engine").
		Info("suspended", "version", id.Version, "hash", id.Hash, "records", len(e.records))
	return id, nil
}

// Resume loads the suspended engine and runs one execution pass for the
// operations that became executable while the engine was suspended.
func (e *Engine) Resume(ctx context.Context) error {
	if err := e.Load(ctx); err != nil {
		return err
	}
	return e.Execute(ctx)
}

// Load reads the latest committed version and rebuilds the configuration by
// replaying the history. Nothing is executed.
func (e *Engine) Load(ctx context.Context) error {
	logger := vault.GetLogger(ctx).With("module", "engine")

	if err := e.db.LoadLatestVersion(); err != nil {
		return errors.Wrap(err, "load store")
	}
	e.deliver = e.db.CacheWrap()

	conf := DefaultConfig()
	if err := gconf.Load(e.deliver, ConfigPackage, &conf); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(errors.ErrState, "vault not initialized")
		}
		return err
	}

	var records []txn.Transaction
	err := e.txns.Iterate(e.deliver, func(key, raw []byte) error {
		var t txn.Transaction
		if err := e.txns.Decode(raw, &t); err != nil {
			return errors.Wrapf(err, "operation %d", orm.DecodeSequence(key))
		}
		records = append(records, t)
		return nil
	})
	if err != nil {
		return err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Meta().ID < records[j].Meta().ID
	})

	st, err := projection.Replay(records, 0)
	if err != nil {
		return errors.Wrap(err, "replay")
	}

	var saved state.State
	switch err := e.snapshots.One(e.deliver, currentSnapshot, &saved); {
	case errors.ErrNotFound.Is(err):
	case err != nil:
		return errors.Wrap(err, "snapshot")
	case !sameLedgers(saved.Ledgers, st.Ledgers):
		logger.Error("linked ledger registry differs from replay", "saved", len(saved.Ledgers), "replayed", len(st.Ledgers))
	}

	e.records = records
	e.state = st
	e.setConfig(conf)
	logger.Info("loaded", "records", len(records))
	return nil
}

func sameLedgers(a, b []state.Ledger) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
