package main

import (
	"fmt"
	"os"

	"github.com/iov-one/vault"
	"github.com/spf13/pflag"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *pflag.FlagSet, name, defaultVal, usage string) *vault.Address {
	a := addressValue{}
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a.addr
}

type addressValue struct {
	addr vault.Address
}

func (a *addressValue) String() string {
	if a.addr == nil {
		return ""
	}
	return a.addr.String()
}

func (a *addressValue) Set(raw string) error {
	addr, err := vault.ParseAddress(raw)
	if err != nil {
		return err
	}
	a.addr = addr
	return nil
}

func (a *addressValue) Type() string {
	return "address"
}

// commonFlags registers the flags shared by every command that opens the
// vault store.
type commonFlags struct {
	home     *string
	logLevel *string
	caller   *vault.Address
}

func flCommon(fl *pflag.FlagSet) commonFlags {
	return commonFlags{
		home:     fl.String("home", defaultHome(), "Directory holding the vault store. Defaults to $VAULT_HOME."),
		logLevel: fl.String("log-level", env("VAULT_LOG_LEVEL", "info"), "Log filter, for example info or engine:debug,*:error."),
		caller:   flAddress(fl, "caller", env("VAULT_CALLER", ""), "Identity the request is made as, for example principal:alice."),
	}
}
