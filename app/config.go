package app

import (
	"github.com/iov-one/vault/cron"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// ConfigPackage is the name the engine configuration is stored under.
const ConfigPackage = "vault"

// Config is the engine configuration. It is persisted with every snapshot.
type Config struct {
	// LedgerID is the ledger of transfers not addressed to a linked ledger.
	// Empty means the executor default.
	LedgerID string `yaml:"ledger_id"`
	// Controllers are the principals controlling the vault on the hosting
	// platform. Updated by executed controllers update operations.
	Controllers []string `yaml:"controllers"`
	// TickPeriod is the number of ticks between two scheduled executions.
	// Zero means cron.DefaultPeriod.
	TickPeriod  uint32 `yaml:"tick_period"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

var _ gconf.Configuration = (*Config)(nil)

// DefaultConfig returns the configuration used when genesis does not provide
// one.
func DefaultConfig() Config {
	return Config{TickPeriod: cron.DefaultPeriod}
}

func (c *Config) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Config) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Config) Validate() error {
	var errs error
	for i, p := range c.Controllers {
		if p == "" {
			errs = errors.Append(errs, errors.Field("Controllers", errors.ErrEmpty, "controller %d", i))
		}
	}
	return errs
}

func (c *Config) tickPeriod() uint64 {
	if c.TickPeriod == 0 {
		return cron.DefaultPeriod
	}
	return uint64(c.TickPeriod)
}
