package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/txn"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func cmdSubmit(input io.Reader, output io.Writer, args []string) error {
	fl := pflag.NewFlagSet("submit", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, `
Submit operations read as a stream of YAML documents from the standard input.
Each document names the operation with a "kind" key, for example:

  kind: transfer
  wallet: w1
  currency: ICP
  address: 0a1b2c
  amount: 150

The caller approval is recorded with each created operation. Several documents
are submitted as a single batch that either succeeds or fails as a whole.
		`)
		fl.PrintDefaults()
	}
	var (
		common  = flCommon(fl)
		batchFl = fl.String("batch", "", "Batch identifier. Generated when more than one operation is submitted.")
	)
	fl.Parse(args)

	reqs, err := readRequests(input)
	if err != nil {
		return err
	}
	batch := *batchFl
	if batch == "" && len(reqs) > 1 {
		batch = uuid.New().String()
	}

	s, err := openSession(common, true)
	if err != nil {
		return err
	}
	created, err := s.engine.SubmitBatch(s.ctx, batch, reqs...)
	if err != nil {
		s.db.Close()
		return fmt.Errorf("cannot submit: %s", err)
	}
	if err := s.close(); err != nil {
		return err
	}
	return writeRecords(output, created)
}

// readRequests decodes every YAML document of the input into the request
// type named by its kind.
func readRequests(input io.Reader) ([]txn.Request, error) {
	dec := yaml.NewDecoder(input)
	var reqs []txn.Request
	for {
		var doc yaml.Node
		switch err := dec.Decode(&doc); {
		case err == io.EOF:
			if len(reqs) == 0 {
				return nil, errors.Wrap(errors.ErrEmpty, "no request in input")
			}
			return reqs, nil
		case err != nil:
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode request: %s", err)
		}

		var head struct {
			Kind txn.Kind `yaml:"kind"`
		}
		if err := doc.Decode(&head); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "request %d: %s", len(reqs), err)
		}
		req, ok := txn.NewRequest(head.Kind)
		if !ok {
			return nil, errors.ErrUnknownOperation.Newf("request %d: kind %q", len(reqs), head.Kind)
		}
		if err := doc.Decode(req); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "request %d: %s", len(reqs), err)
		}
		reqs = append(reqs, req)
	}
}
