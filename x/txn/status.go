package txn

import (
	"strings"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Status is the lifecycle state of an operation record.
type Status int32

const (
	StatusBlocked  Status = 1
	StatusPending  Status = 2
	StatusApproved Status = 3
	StatusExecuted Status = 4
	StatusRejected Status = 5
	StatusFailed   Status = 6
	StatusPurged   Status = 7
)

var statusNames = map[Status]string{
	StatusBlocked:  "blocked",
	StatusPending:  "pending",
	StatusApproved: "approved",
	StatusExecuted: "executed",
	StatusRejected: "rejected",
	StatusFailed:   "failed",
	StatusPurged:   "purged",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// Terminal returns true if no further change is allowed.
func (s Status) Terminal() bool {
	switch s {
	case StatusExecuted, StatusRejected, StatusFailed, StatusPurged:
		return true
	}
	return false
}

// Decision is the value of a vote.
type Decision int32

const (
	Approve Decision = 1
	Reject  Decision = 2
)

func (d Decision) String() string {
	switch d {
	case Approve:
		return "approve"
	case Reject:
		return "reject"
	}
	return "unknown"
}

// ParseDecision returns the decision for its name.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(s) {
	case "approve", "yes":
		return Approve, nil
	case "reject", "no":
		return Reject, nil
	}
	return 0, errors.Wrapf(errors.ErrInput, "unknown decision %q", s)
}

func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decision) UnmarshalText(raw []byte) error {
	v, err := ParseDecision(string(raw))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Vote is a single voter decision. A record holds at most one vote per voter.
type Vote struct {
	Voter vault.Address  `json:"voter"`
	Time  vault.UnixTime `json:"time"`
	Value Decision       `json:"value"`
}

// Failure is the error recorded on an operation that did not succeed.
type Failure struct {
	Code    uint32 `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewFailure converts an error into its persisted form.
func NewFailure(err error) Failure {
	if err == nil {
		return Failure{}
	}
	return Failure{Code: errors.Code(err), Message: err.Error()}
}

// IsZero returns true if no failure is recorded.
func (f Failure) IsZero() bool {
	return f.Code == 0 && f.Message == ""
}

// Err rebuilds the recorded error. The result can be tested with the
// registered error Is method.
func (f Failure) Err() error {
	if f.IsZero() {
		return nil
	}
	kind := errors.ByCode(f.Code)
	if kind == nil {
		kind = errors.ErrState
	}
	return errors.Wrap(kind, f.Message)
}
