// Package types defines the domain types shared across the hashcloud client:
// file descriptors, remote file records, ACL roles, and the canonical
// action-message encoding that wallet signatures commit to.
package types

import "time"

// MaxFileSize is the per-file size ceiling (20 MiB). Files above the ceiling
// are never hashed and never enter the signed digest set.
const MaxFileSize = 20 * 1024 * 1024

// Role is an access-control role attached to an account address.
type Role int

// ACL roles in descending privilege order. The numeric values are part of
// the wire contract with the server and must not change.
const (
	RoleNone    Role = 0
	RoleOwner   Role = 1 // may share and delete
	RoleManager Role = 2 // may share
	RoleViewer  Role = 3 // may only download
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleManager:
		return "manager"
	case RoleViewer:
		return "viewer"
	default:
		return "none"
	}
}

// Shareable reports whether a role may be granted to another account via the
// share operation. Ownership is never transferred this way.
func (r Role) Shareable() bool {
	return r == RoleManager || r == RoleViewer
}

// CanShare reports whether the holder may grant access to others.
func (r Role) CanShare() bool {
	return r == RoleOwner || r == RoleManager
}

// CanDelete reports whether the holder may delete the file.
func (r Role) CanDelete() bool {
	return r == RoleOwner
}

// ACL maps checksummed account addresses to roles.
type ACL map[string]Role

// SubmissionState tracks a descriptor's per-file upload outcome.
// It is set only after a server response has been interpreted.
type SubmissionState int

const (
	// SubmissionPending means no server response has been seen yet.
	SubmissionPending SubmissionState = iota
	// SubmissionAccepted means the server confirmed storing the file.
	SubmissionAccepted
	// SubmissionRejected means the server response omitted the file's digest.
	SubmissionRejected
)

// String returns the lowercase state name.
func (s SubmissionState) String() string {
	switch s {
	case SubmissionAccepted:
		return "accepted"
	case SubmissionRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// FileDescriptor represents one local file in flight through an upload.
//
// Payload is owned exclusively by the descriptor until submission. Digest is
// set once by the intake pipeline and is empty iff Oversize is true.
type FileDescriptor struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Payload  []byte `json:"-"`

	Digest   string          `json:"digest,omitempty"`
	Oversize bool            `json:"oversize"`
	State    SubmissionState `json:"state"`
}

// RemoteFileRecord is a server-confirmed file, distinct from FileDescriptor.
// Records are always replaced wholesale by a list refresh, never mutated
// field-by-field.
type RemoteFileRecord struct {
	Digest      string    `json:"hash"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	ContentSize int64     `json:"contentSize"`
	Timestamp   time.Time `json:"timestamp"`
	ACL         ACL       `json:"acl,omitempty"`
}

// RoleOf returns the role the given address holds on this file.
func (r *RemoteFileRecord) RoleOf(address string) Role {
	if r.ACL == nil {
		return RoleNone
	}
	return r.ACL[address]
}
