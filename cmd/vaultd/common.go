package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/iavl"
	"github.com/iov-one/vault/x/transfer"
	"github.com/iov-one/vault/x/txn"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

// newLogger returns a logger writing to stderr so that the command output
// stays parsable.
func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "vaultd")
	return tmflags.ParseLogLevel(level, logger, "info")
}

// session is an engine opened on the home directory store.
type session struct {
	ctx    context.Context
	db     *iavl.CommitStore
	engine *app.Engine
	ledger *transfer.DevLedger
}

// openSession opens the store and builds the engine. When resume is true the
// suspended engine is loaded and operations that became executable are run.
func openSession(fl commonFlags, resume bool) (*session, error) {
	logger, err := newLogger(*fl.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", err)
	}
	if err := os.MkdirAll(*fl.home, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create home directory: %s", err)
	}

	ctx := vault.WithLogger(context.Background(), logger)
	ctx = vault.WithBlockTime(ctx, time.Now())
	if *fl.caller != nil {
		ctx = vault.WithCaller(ctx, *fl.caller)
	}

	s := &session{
		ctx:    ctx,
		db:     iavl.NewCommitStore(*fl.home, "vault"),
		ledger: transfer.NewDevLedger(),
	}
	s.engine = app.NewEngine(s.db, s.ledger, transfer.NewDevPlatform())
	if !resume {
		// Init must see an already initialized vault.
		if err := s.db.LoadLatestVersion(); err != nil {
			s.db.Close()
			return nil, err
		}
		return s, nil
	}

	if err := s.engine.Load(ctx); err != nil {
		s.db.Close()
		return nil, err
	}
	s.restoreLedger()
	if err := s.engine.Execute(ctx); err != nil {
		s.db.Close()
		return nil, err
	}
	return s, nil
}

// restoreLedger rebuilds the development ledger balances from the executed
// top ups and transfers of the history. Entries the ledger refuses are
// logged and skipped.
func (s *session) restoreLedger() {
	logger := vault.GetLogger(s.ctx).With("module", "devledger")
	ctx := vault.WithLogger(s.ctx, log.NewNopLogger())
	for _, t := range s.engine.History() {
		if t.Meta().Status != txn.StatusExecuted {
			continue
		}
		var err error
		switch tx := t.(type) {
		case *txn.TopUp:
			_, err = s.ledger.TopUp(ctx, tx.Wallet, tx.Currency, tx.Amount)
		case *txn.TopUpQuorum:
			_, err = s.ledger.TopUp(ctx, tx.Wallet, tx.Currency, tx.Amount)
		case *txn.Transfer:
			_, err = s.ledger.Transfer(ctx, order(tx.TransferRequest))
		case *txn.TransferQuorum:
			_, err = s.ledger.Transfer(ctx, order(tx.TransferRequest))
		case *txn.TransferLinked:
			o := transfer.Order{Ledger: tx.Ledger, Wallet: tx.Wallet, Amount: tx.Amount, To: []byte(tx.To), Memo: tx.Memo}
			_, err = s.ledger.TransferLinked(ctx, tx.Ledger, o)
		}
		if err != nil {
			logger.Error("cannot restore ledger entry", "id", t.Meta().ID, "kind", t.Kind(), "err", err)
		}
	}
}

func order(r txn.TransferRequest) transfer.Order {
	return transfer.Order{Wallet: r.Wallet, Currency: r.Currency, Amount: r.Amount, To: []byte(r.Address), Memo: r.Memo}
}

// close suspends the engine and releases the store.
func (s *session) close() error {
	defer s.db.Close()
	if _, err := s.engine.Suspend(s.ctx); err != nil {
		return errors.Wrap(err, "suspend")
	}
	return nil
}

// writeRecords prints operations as a JSON array.
func writeRecords(w io.Writer, records []txn.Transaction) error {
	raws := make([]json.RawMessage, 0, len(records))
	for _, t := range records {
		raw, err := txn.MarshalJSON(t)
		if err != nil {
			return fmt.Errorf("cannot serialize operation %d: %s", t.Meta().ID, err)
		}
		raws = append(raws, raw)
	}
	raw, err := json.MarshalIndent(raws, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
