package app

import (
	"bytes"
	"context"
	"io/ioutil"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/x/state"
	"github.com/iov-one/vault/x/txn"
	"gopkg.in/yaml.v3"
)

// Genesis is the initial setup of a vault.
type Genesis struct {
	// Conf holds the package configurations, the engine reads the
	// ConfigPackage entry.
	Conf     gconf.Options  `yaml:"conf"`
	Admins   []state.Member `yaml:"admins"`
	Quorum   uint32         `yaml:"quorum"`
	Wallets  []state.Wallet `yaml:"wallets"`
	Policies []state.Policy `yaml:"policies"`
}

// LoadGenesis reads a YAML genesis file. Unknown fields are rejected.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading genesis file")
	}
	return ParseGenesis(raw)
}

// ParseGenesis decodes a YAML genesis document.
func ParseGenesis(raw []byte) (*Genesis, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var g Genesis
	if err := dec.Decode(&g); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return &g, nil
}

func (g *Genesis) Validate() error {
	if len(g.Admins) == 0 {
		return errors.Field("Admins", errors.ErrEmpty, "at least one admin required")
	}
	for i, a := range g.Admins {
		if err := a.ID.Validate(); err != nil {
			return errors.Field("Admins", err, "admin %d", i)
		}
	}
	if g.Quorum == 0 || int(g.Quorum) > len(g.Admins) {
		return errors.Field("Quorum", errors.ErrQuorumNotReachable, "quorum %d with %d admins", g.Quorum, len(g.Admins))
	}
	return nil
}

// requests returns the operations that reproduce this genesis when replayed.
func (g *Genesis) requests(conf Config) []txn.Request {
	var reqs []txn.Request
	for _, a := range g.Admins {
		reqs = append(reqs, &txn.MemberCreateRequest{Member: a.ID, Name: a.Name, Role: state.RoleAdmin})
	}
	reqs = append(reqs, &txn.QuorumUpdateRequest{Quorum: g.Quorum})
	for _, w := range g.Wallets {
		reqs = append(reqs, &txn.WalletCreateRequest{UID: w.UID, Name: w.Name, Network: w.Network})
	}
	for _, p := range g.Policies {
		reqs = append(reqs, &txn.PolicyCreateRequest{
			UID:             p.UID,
			AmountThreshold: p.AmountThreshold,
			MemberThreshold: p.MemberThreshold,
			Currency:        p.Currency,
			Wallets:         p.Wallets,
		})
	}
	if conf.Name != "" || conf.Description != "" {
		reqs = append(reqs, &txn.VaultNamingUpdateRequest{Name: conf.Name, Description: conf.Description})
	}
	return reqs
}

// Init bootstraps an empty engine. Genesis members, quorum, wallets and
// policies are recorded as executed operations so that a replay of the
// history reproduces them.
func (e *Engine) Init(ctx context.Context, g *Genesis) error {
	if err := g.Validate(); err != nil {
		return errors.Wrap(err, "genesis")
	}
	if latest, err := e.ids.Latest(e.deliver); err != nil {
		return err
	} else if latest != 0 || len(e.records) != 0 {
		return errors.Wrap(errors.ErrState, "vault already initialized")
	}

	cache := e.deliver.CacheWrap()
	conf := DefaultConfig()
	var err error
	if _, ok := g.Conf[ConfigPackage]; ok {
		err = gconf.InitConfig(cache, g.Conf, ConfigPackage, &conf)
	} else {
		err = gconf.Save(cache, ConfigPackage, &conf)
	}
	if err != nil {
		cache.Discard()
		return err
	}

	now := vault.Now(ctx)
	initiator := g.Admins[0].ID
	st := e.state
	var records []txn.Transaction
	for _, req := range g.requests(conf) {
		if err := req.Validate(); err != nil {
			cache.Discard()
			return errors.Wrapf(err, "genesis %s", req.Kind())
		}
		id, err := e.ids.NextInt(cache)
		if err != nil {
			cache.Discard()
			return err
		}
		t, err := txn.New(req, txn.Common{
			ID:         id,
			Initiator:  initiator,
			CreatedAt:  now,
			ModifiedAt: now,
			Votes:      []txn.Vote{{Voter: initiator, Time: now, Value: txn.Approve}},
		})
		if err != nil {
			cache.Discard()
			return err
		}
		next := st.Copy()
		if err := txn.Apply(t, next); err != nil {
			cache.Discard()
			return errors.Wrapf(err, "genesis %s", req.Kind())
		}
		t.Meta().Threshold = 1
		t.Meta().Finish(txn.StatusExecuted, nil, now)
		st = next
		records = append(records, t)
	}

	e.records = records
	e.state = st
	e.setConfig(conf)
	if err := e.persist(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write genesis")
	}
	vault.GetLogger(ctx).With("module", "engine").
		Info("vault initialized", "admins", len(g.Admins), "quorum", g.Quorum, "records", len(records))
	return nil
}
