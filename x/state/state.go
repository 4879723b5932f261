package state

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// State is the replicated vault configuration.
type State struct {
	Quorum      Quorum   `json:"quorum"`
	Members     []Member `json:"members"`
	Wallets     []Wallet `json:"wallets"`
	Policies    []Policy `json:"policies"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ledgers     []Ledger `json:"ledgers"`
}

// New returns an empty state, the starting point of every replay.
func New() *State {
	return &State{}
}

// Copy returns a deep copy. Mutating the copy never affects the original.
func (s *State) Copy() *State {
	c := &State{
		Quorum:      s.Quorum,
		Name:        s.Name,
		Description: s.Description,
	}
	if s.Members != nil {
		c.Members = make([]Member, len(s.Members))
		for i, m := range s.Members {
			m.ID = append(vault.Address(nil), m.ID...)
			c.Members[i] = m
		}
	}
	if s.Wallets != nil {
		c.Wallets = append([]Wallet{}, s.Wallets...)
	}
	if s.Policies != nil {
		c.Policies = make([]Policy, len(s.Policies))
		for i, p := range s.Policies {
			if p.Wallets != nil {
				p.Wallets = append([]string{}, p.Wallets...)
			}
			c.Policies[i] = p
		}
	}
	if s.Ledgers != nil {
		c.Ledgers = append([]Ledger{}, s.Ledgers...)
	}
	return c
}

// Member returns the position of the member with given id or -1.
func (s *State) Member(id vault.Address) int {
	for i, m := range s.Members {
		if m.ID.Equals(id) {
			return i
		}
	}
	return -1
}

// RoleOf returns the role of given member.
func (s *State) RoleOf(id vault.Address) (Role, bool) {
	if i := s.Member(id); i >= 0 {
		return s.Members[i].Role, true
	}
	return RoleUnknown, false
}

// Wallet returns the position of the wallet with given uid or -1.
func (s *State) Wallet(uid string) int {
	for i, w := range s.Wallets {
		if w.UID == uid {
			return i
		}
	}
	return -1
}

// Policy returns the position of the policy with given uid or -1.
func (s *State) Policy(uid string) int {
	for i, p := range s.Policies {
		if p.UID == uid {
			return i
		}
	}
	return -1
}

// Ledger returns the position of the linked ledger or -1.
func (s *State) Ledger(ledger string) int {
	for i, l := range s.Ledgers {
		if l.Ledger == ledger {
			return i
		}
	}
	return -1
}

// Admins returns the number of members with the admin role.
func (s *State) Admins() uint32 {
	return s.Count(AdminRoles)
}

// Count returns the number of members having any of the given roles.
func (s *State) Count(roles []Role) uint32 {
	var n uint32
	for _, m := range s.Members {
		if HasRole(roles, m.Role) {
			n++
		}
	}
	return n
}

// Eligible returns true if given address belongs to a member with any of the
// given roles.
func (s *State) Eligible(id vault.Address, roles []Role) bool {
	role, ok := s.RoleOf(id)
	return ok && HasRole(roles, role)
}

// HasRole returns true if r is one of roles.
func HasRole(roles []Role, r Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

// ThresholdTaken returns true if an existing policy that can apply to the same
// wallets as p already uses the same amount threshold.
func (s *State) ThresholdTaken(p Policy) bool {
	for _, o := range s.Policies {
		if o.UID != p.UID && o.AmountThreshold == p.AmountThreshold && o.overlaps(p) {
			return true
		}
	}
	return false
}

// Validate checks the consistency of the whole configuration. An empty state
// is valid.
func (s *State) Validate() error {
	var errs error
	seen := make(map[string]struct{})
	for i, m := range s.Members {
		if err := m.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "member %d", i))
		}
		if _, ok := seen[string(m.ID)]; ok {
			errs = errors.Append(errs, errors.ErrMemberAlreadyExists.Newf("member %s", m.ID))
		}
		seen[string(m.ID)] = struct{}{}
	}
	if q := s.Quorum.Quorum; q > s.Admins() {
		errs = errors.Append(errs, errors.ErrQuorumNotReachable.Newf("quorum %d with %d admins", q, s.Admins()))
	}
	uids := make(map[string]struct{})
	for _, w := range s.Wallets {
		if err := w.Validate(); err != nil {
			errs = errors.Append(errs, err)
		}
		if _, ok := uids[w.UID]; ok {
			errs = errors.Append(errs, errors.ErrUIDAlreadyExists.Newf("wallet %q", w.UID))
		}
		uids[w.UID] = struct{}{}
	}
	for _, p := range s.Policies {
		if err := p.Validate(); err != nil {
			errs = errors.Append(errs, err)
		}
		if _, ok := uids[p.UID]; ok {
			errs = errors.Append(errs, errors.ErrUIDAlreadyExists.Newf("policy %q", p.UID))
		}
		uids[p.UID] = struct{}{}
	}
	return errs
}
