package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/vault/app"
	"github.com/spf13/pflag"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := pflag.NewFlagSet("init", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, `
Create a new vault from a YAML genesis document. The genesis is read from the
file given with --genesis or from the standard input.

Genesis members, quorum, wallets and policies are recorded as executed
operations of the first admin.
		`)
		fl.PrintDefaults()
	}
	var (
		common    = flCommon(fl)
		genesisFl = fl.String("genesis", "", "Path to the genesis file. Standard input is used if not given.")
	)
	fl.Parse(args)

	var (
		g   *app.Genesis
		err error
	)
	if *genesisFl != "" {
		g, err = app.LoadGenesis(*genesisFl)
	} else {
		var raw []byte
		if raw, err = ioutil.ReadAll(input); err == nil {
			g, err = app.ParseGenesis(raw)
		}
	}
	if err != nil {
		return fmt.Errorf("cannot read genesis: %s", err)
	}

	s, err := openSession(common, false)
	if err != nil {
		return err
	}
	if err := s.engine.Init(s.ctx, g); err != nil {
		s.db.Close()
		return fmt.Errorf("cannot initialize: %s", err)
	}
	if err := s.close(); err != nil {
		return err
	}
	return writeRecords(output, s.engine.History())
}
