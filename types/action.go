package types

import (
	"fmt"
	"strings"
)

// ActionKind identifies one of the four signable file operations.
// The kind is always the first token of the canonical message, which is what
// prevents a signature minted for one kind being replayed as another.
type ActionKind string

const (
	ActionUpload   ActionKind = "upload"
	ActionDownload ActionKind = "download"
	ActionShare    ActionKind = "share"
	ActionDelete   ActionKind = "delete"
)

// Valid reports whether k is one of the four defined action kinds.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionUpload, ActionDownload, ActionShare, ActionDelete:
		return true
	}
	return false
}

// ActionMessage is the canonical commitment a wallet signature authorizes:
// an action kind over an ordered sequence of file digests.
//
// Encoding format v1: "<kind>+<digest_1>+...+<digest_n>", joined with "+",
// order-sensitive. The same digests in a different order encode to a
// different message and therefore a different, non-interchangeable
// signature. Any future field added to the commitment must bump the format
// version and change the encoding, never silently widen it.
type ActionMessage struct {
	Kind    ActionKind
	Digests []string
}

// NewActionMessage builds an ActionMessage, preserving digest order.
func NewActionMessage(kind ActionKind, digests ...string) ActionMessage {
	return ActionMessage{Kind: kind, Digests: digests}
}

// Encode returns the canonical v1 wire string.
// An upload with no accepted digests encodes to just the kind; the server
// then has an empty commitment and must reject every transmitted payload.
func (m ActionMessage) Encode() string {
	if len(m.Digests) == 0 {
		return string(m.Kind)
	}
	return string(m.Kind) + "+" + strings.Join(m.Digests, "+")
}

// Validate checks the message is well-formed before it is offered for
// signing: a known kind, at least one digest for single-subject kinds, and
// exactly one digest for download, share, and delete.
func (m ActionMessage) Validate() error {
	if !m.Kind.Valid() {
		return fmt.Errorf("unknown action kind %q", m.Kind)
	}
	switch m.Kind {
	case ActionDownload, ActionShare, ActionDelete:
		if len(m.Digests) != 1 {
			return fmt.Errorf("%s requires exactly one digest, got %d", m.Kind, len(m.Digests))
		}
	}
	for _, d := range m.Digests {
		if d == "" {
			return fmt.Errorf("%s message contains an empty digest", m.Kind)
		}
		if strings.Contains(d, "+") {
			return fmt.Errorf("digest %q contains the separator character", d)
		}
	}
	return nil
}
