package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/vault/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		value interface{}
		fail  bool
	}{
		"untyped nil":      {value: nil},
		"typed nil":        {value: nilErr},
		"nil slice":        {value: []byte(nil)},
		"error":            {value: fmt.Errorf("boom"), fail: true},
		"non pointer type": {value: 42, fail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.fail {
				t.Fatalf("want failure %v, got %v", tc.fail, r.failed)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var r recorder
	Equal(&r, []string{"a"}, []string{"a"})
	if r.failed {
		t.Fatal("equal slices reported as different")
	}
	Equal(&r, uint64(1), 1)
	if !r.failed {
		t.Fatal("different types reported as equal")
	}
}
