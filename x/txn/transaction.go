package txn

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/state"
)

// Transaction is an operation record. The only implementations are the
// record types declared in this package.
type Transaction interface {
	Request
	Meta() *Common
}

// Common holds the fields shared by every operation record.
type Common struct {
	ID         uint64         `json:"id"`
	Votes      []Vote         `json:"votes"`
	Status     Status         `json:"status"`
	Initiator  vault.Address  `json:"initiator"`
	CreatedAt  vault.UnixTime `json:"created_at"`
	ModifiedAt vault.UnixTime `json:"modified_at"`
	Failure    Failure        `json:"failure"`
	BatchID    string         `json:"batch_id,omitempty"`
	VaultState bool           `json:"vault_state"`
	// Threshold is the number of approvals required. It is resolved once,
	// zero means it was not resolved yet.
	Threshold uint32 `json:"threshold"`
}

// Meta gives access to the shared fields.
func (c *Common) Meta() *Common { return c }

// AddVote records a vote, replacing any previous vote of the same voter.
func (c *Common) AddVote(v Vote) error {
	if c.Status.Terminal() {
		return errors.ErrImmutable.Newf("operation %d is %s", c.ID, c.Status)
	}
	for i, prev := range c.Votes {
		if prev.Voter.Equals(v.Voter) {
			c.Votes[i] = v
			return nil
		}
	}
	c.Votes = append(c.Votes, v)
	return nil
}

// Tally counts approve and reject votes of members currently holding one of
// given roles.
func (c *Common) Tally(st *state.State, roles []state.Role) (approves, rejects uint32) {
	for _, v := range c.Votes {
		if !st.Eligible(v.Voter, roles) {
			continue
		}
		switch v.Value {
		case Approve:
			approves++
		case Reject:
			rejects++
		}
	}
	return approves, rejects
}

// Finish moves the record into a terminal status with given failure. A nil
// error clears the failure.
func (c *Common) Finish(s Status, err error, now vault.UnixTime) {
	c.Status = s
	c.Failure = NewFailure(err)
	c.ModifiedAt = now
}

type MemberCreate struct {
	Common
	MemberCreateRequest
}

type MemberRemove struct {
	Common
	MemberRemoveRequest
}

type MemberRoleUpdate struct {
	Common
	MemberRoleUpdateRequest
}

type MemberNameUpdate struct {
	Common
	MemberNameUpdateRequest
}

type MemberExtendAccount struct {
	Common
	MemberExtendAccountRequest
}

type WalletCreate struct {
	Common
	WalletCreateRequest
}

type WalletUpdateName struct {
	Common
	WalletUpdateNameRequest
}

type PolicyCreate struct {
	Common
	PolicyCreateRequest
}

type PolicyUpdate struct {
	Common
	PolicyUpdateRequest
}

type PolicyRemove struct {
	Common
	PolicyRemoveRequest
}

type QuorumUpdate struct {
	Common
	QuorumUpdateRequest
}

type VaultNamingUpdate struct {
	Common
	VaultNamingUpdateRequest
}

type ControllersUpdate struct {
	Common
	ControllersUpdateRequest
	// CurrentControllers are the controllers the platform reported right
	// before the update.
	CurrentControllers []string `json:"current_controllers,omitempty"`
}

type VersionUpgrade struct {
	Common
	VersionUpgradeRequest
}

type Purge struct {
	Common
	PurgeRequest
	// Purged is the number of operations marked by this purge.
	Purged uint32 `json:"purged"`
}

type Transfer struct {
	Common
	TransferRequest
	BlockIndex uint64 `json:"block_index"`
}

type TransferQuorum struct {
	Common
	TransferQuorumRequest
	BlockIndex uint64 `json:"block_index"`
}

type TransferLinked struct {
	Common
	TransferLinkedRequest
	BlockIndex uint64 `json:"block_index"`
}

type TopUp struct {
	Common
	TopUpRequest
	BlockIndex uint64 `json:"block_index"`
}

type TopUpQuorum struct {
	Common
	TopUpQuorumRequest
	BlockIndex uint64 `json:"block_index"`
}

type LedgerAdd struct {
	Common
	LedgerAddRequest
}

type LedgerRemove struct {
	Common
	LedgerRemoveRequest
}

// New creates a record of the kind matching the request. The kind specific
// fields of c are overwritten. The record starts Pending.
func New(req Request, c Common) (Transaction, error) {
	if req == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "request")
	}
	c.VaultState = req.Kind().VaultState()
	c.Status = StatusPending
	c.Threshold = 0
	c.Failure = Failure{}

	switch r := req.(type) {
	case *MemberCreateRequest:
		return &MemberCreate{Common: c, MemberCreateRequest: *r}, nil
	case *MemberRemoveRequest:
		return &MemberRemove{Common: c, MemberRemoveRequest: *r}, nil
	case *MemberRoleUpdateRequest:
		return &MemberRoleUpdate{Common: c, MemberRoleUpdateRequest: *r}, nil
	case *MemberNameUpdateRequest:
		return &MemberNameUpdate{Common: c, MemberNameUpdateRequest: *r}, nil
	case *MemberExtendAccountRequest:
		return &MemberExtendAccount{Common: c, MemberExtendAccountRequest: *r}, nil
	case *WalletCreateRequest:
		return &WalletCreate{Common: c, WalletCreateRequest: *r}, nil
	case *WalletUpdateNameRequest:
		return &WalletUpdateName{Common: c, WalletUpdateNameRequest: *r}, nil
	case *PolicyCreateRequest:
		return &PolicyCreate{Common: c, PolicyCreateRequest: *r}, nil
	case *PolicyUpdateRequest:
		return &PolicyUpdate{Common: c, PolicyUpdateRequest: *r}, nil
	case *PolicyRemoveRequest:
		return &PolicyRemove{Common: c, PolicyRemoveRequest: *r}, nil
	case *QuorumUpdateRequest:
		return &QuorumUpdate{Common: c, QuorumUpdateRequest: *r}, nil
	case *VaultNamingUpdateRequest:
		return &VaultNamingUpdate{Common: c, VaultNamingUpdateRequest: *r}, nil
	case *ControllersUpdateRequest:
		return &ControllersUpdate{Common: c, ControllersUpdateRequest: *r}, nil
	case *VersionUpgradeRequest:
		return &VersionUpgrade{Common: c, VersionUpgradeRequest: *r}, nil
	case *PurgeRequest:
		return &Purge{Common: c}, nil
	case *TransferRequest:
		return &Transfer{Common: c, TransferRequest: *r}, nil
	case *TransferQuorumRequest:
		return &TransferQuorum{Common: c, TransferQuorumRequest: *r}, nil
	case *TransferLinkedRequest:
		return &TransferLinked{Common: c, TransferLinkedRequest: *r}, nil
	case *TopUpRequest:
		return &TopUp{Common: c, TopUpRequest: *r}, nil
	case *TopUpQuorumRequest:
		return &TopUpQuorum{Common: c, TopUpQuorumRequest: *r}, nil
	case *LedgerAddRequest:
		return &LedgerAdd{Common: c, LedgerAddRequest: *r}, nil
	case *LedgerRemoveRequest:
		return &LedgerRemove{Common: c, LedgerRemoveRequest: *r}, nil
	default:
		return nil, errors.ErrUnknownOperation.Newf("%T", req)
	}
}
