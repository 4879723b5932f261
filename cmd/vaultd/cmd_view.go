package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/x/txn"
	"github.com/spf13/pflag"
)

func cmdHistory(input io.Reader, output io.Writer, args []string) error {
	fl := pflag.NewFlagSet("history", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, `
Print operations in ascending id order.
		`)
		fl.PrintDefaults()
	}
	var (
		common = flCommon(fl)
		idFl   = fl.Uint64("id", 0, "Print only the operation with given id.")
	)
	fl.Parse(args)

	s, err := openSession(common, true)
	if err != nil {
		return err
	}
	if err := s.close(); err != nil {
		return err
	}
	if *idFl == 0 {
		return writeRecords(output, s.engine.History())
	}
	t, err := s.engine.Get(*idFl)
	if err != nil {
		return err
	}
	return writeRecords(output, []txn.Transaction{t})
}

func cmdState(input io.Reader, output io.Writer, args []string) error {
	fl := pflag.NewFlagSet("state", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, `
Print the vault configuration. With --up-to the configuration right after the
given operation is rebuilt from the history.
		`)
		fl.PrintDefaults()
	}
	var (
		common = flCommon(fl)
		upToFl = fl.Uint64("up-to", 0, "Operation id. Zero prints the current configuration.")
	)
	fl.Parse(args)

	s, err := openSession(common, true)
	if err != nil {
		return err
	}
	if err := s.close(); err != nil {
		return err
	}
	st, err := s.engine.State(*upToFl)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(st, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}

func cmdVersion(input io.Reader, output io.Writer, args []string) error {
	fmt.Fprintln(output, vault.RunningVersion(), gitHash)
	return nil
}

// gitHash is set during the compilation time.
var gitHash string = "dev"
