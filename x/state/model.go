package state

import (
	"strings"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Role of a vault member.
type Role int32

const (
	RoleUnknown Role = 0
	RoleAdmin   Role = 1
	RoleMember  Role = 2
)

// AllRoles lists every role that can vote on fund operations.
var AllRoles = []Role{RoleAdmin, RoleMember}

// AdminRoles lists roles allowed to vote on vault state operations.
var AdminRoles = []Role{RoleAdmin}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleMember:
		return "member"
	default:
		return "unknown"
	}
}

// Validate returns an error if this is not a known role.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleMember:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "role %d", r)
}

// ParseRole returns a role for its name.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "admin":
		return RoleAdmin, nil
	case "member":
		return RoleMember, nil
	}
	return RoleUnknown, errors.Wrapf(errors.ErrInput, "unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(raw []byte) error {
	role, err := ParseRole(string(raw))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Member is a person allowed to vote.
type Member struct {
	ID      vault.Address `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Role    Role          `json:"role" yaml:"role"`
	Account string        `json:"account,omitempty" yaml:"account,omitempty"`
}

func (m Member) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ID", m.ID.Validate())
	errs = errors.AppendField(errs, "Role", m.Role.Validate())
	return errs
}

// Wallet is a custodied account. UID is assigned by the client.
type Wallet struct {
	UID     string `json:"uid" yaml:"uid"`
	Name    string `json:"name" yaml:"name"`
	Network string `json:"network" yaml:"network"`
}

func (w Wallet) Validate() error {
	if w.UID == "" {
		return errors.Field("UID", errors.ErrEmpty, "required")
	}
	return nil
}

// Policy declares how many approvals a transfer above AmountThreshold
// requires. Zero MemberThreshold means all members must approve. A policy
// without wallets applies to the whole vault.
type Policy struct {
	UID             string   `json:"uid" yaml:"uid"`
	AmountThreshold uint64   `json:"amount_threshold" yaml:"amount_threshold"`
	MemberThreshold uint32   `json:"member_threshold,omitempty" yaml:"member_threshold,omitempty"`
	Currency        string   `json:"currency" yaml:"currency"`
	Wallets         []string `json:"wallets,omitempty" yaml:"wallets,omitempty"`
}

func (p Policy) Validate() error {
	var errs error
	if p.UID == "" {
		errs = errors.AppendField(errs, "UID", errors.ErrEmpty)
	}
	if p.Currency == "" {
		errs = errors.AppendField(errs, "Currency", errors.ErrEmpty)
	}
	for i, w := range p.Wallets {
		if w == "" {
			errs = errors.Append(errs, errors.Field("Wallets", errors.ErrEmpty, "wallet %d", i))
		}
	}
	return errs
}

// BoundTo returns true if the policy explicitly lists given wallet.
func (p Policy) BoundTo(wallet string) bool {
	for _, w := range p.Wallets {
		if w == wallet {
			return true
		}
	}
	return false
}

// VaultWide returns true if the policy is not bound to any wallet.
func (p Policy) VaultWide() bool {
	return len(p.Wallets) == 0
}

// overlaps returns true if both policies can apply to the same wallet.
func (p Policy) overlaps(o Policy) bool {
	if p.VaultWide() || o.VaultWide() {
		return true
	}
	for _, w := range p.Wallets {
		if o.BoundTo(w) {
			return true
		}
	}
	return false
}

// Quorum is the number of admin approvals required by vault state
// operations.
type Quorum struct {
	Quorum     uint32         `json:"quorum"`
	ModifiedAt vault.UnixTime `json:"modified_at"`
}

// Ledger is a linked external asset ledger.
type Ledger struct {
	Ledger string `json:"ledger" yaml:"ledger"`
	Index  string `json:"index" yaml:"index"`
}
