package gconf

import (
	"github.com/iov-one/vault/errors"
	"gopkg.in/yaml.v3"
)

// Options is the "conf" section of a genesis file. Each package reads its own
// configuration from the entry named after the package.
type Options map[string]yaml.Node

// ReadOptions decodes the configuration of given package into dst.
func (o Options) ReadOptions(pkg string, dst interface{}) error {
	node, ok := o[pkg]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := node.Decode(dst); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode %q configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig will take opts[pkg], parse it into the given Configuration object
// validate it, and store under the proper key in the database
// Returns an error if anything goes wrong
func InitConfig(db Store, opts Options, pkg string, conf Configuration) error {
	if err := opts.ReadOptions(pkg, conf); err != nil {
		return err
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
