package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hashcloud-io/hashcloud/digest"
	"github.com/hashcloud-io/hashcloud/log"
	"github.com/hashcloud-io/hashcloud/types"
	"github.com/hashcloud-io/hashcloud/wallet"
)

// ErrShareGuard marks locally rejected share input: a malformed grantee
// address or a role outside {manager, viewer}. Guard failures never solicit
// a signature and never reach the network; they are input validation, not
// workflow errors, and are not sent through the Reporter.
var ErrShareGuard = errors.New("workflow: share input rejected")

// Share is the transient sub-state collecting a grantee and role for one
// file. It stays open until a grant succeeds or the caller closes it.
type Share struct {
	ctrl   *Controller
	logger *log.Logger

	fileDigest string
	open       bool
}

// NewShare opens a share sub-state for one file.
func (c *Controller) NewShare(fileDigest string) *Share {
	return &Share{
		ctrl:       c,
		logger:     c.workflowLogger(types.ActionShare),
		fileDigest: fileDigest,
		open:       true,
	}
}

// Open reports whether the sub-state is still collecting input.
func (s *Share) Open() bool { return s.open }

// Close abandons the sub-state without granting anything.
func (s *Share) Close() { s.open = false }

// Grant validates the grantee, signs the share commitment, and submits the
// ACL delta. On success the sub-state closes; the user's own list is
// unaffected by an ACL change, so no refresh is triggered.
func (s *Share) Grant(ctx context.Context, address string, role types.Role) error {
	if !s.open {
		return fmt.Errorf("%w: grant on closed share", ErrBadTransition)
	}
	if !digest.Valid(s.fileDigest) {
		return fmt.Errorf("%w: malformed digest %q", ErrShareGuard, s.fileDigest)
	}

	// Guards: checked before any signature solicitation or network call.
	if !role.Shareable() {
		return fmt.Errorf("%w: role %d not grantable", ErrShareGuard, role)
	}
	grantee, err := wallet.NormalizeAddress(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShareGuard, err)
	}

	msg := types.NewActionMessage(types.ActionShare, s.fileDigest)
	sig, err := s.ctrl.signer.Authorize(ctx, msg)
	if err != nil {
		s.ctrl.reporter.Report(SeverityError, "share authorization failed", err)
		return err
	}

	if err := s.ctrl.gateway.Share(ctx, s.ctrl.Account(), sig, s.fileDigest, grantee, role); err != nil {
		s.ctrl.reporter.Report(SeverityError, "share submission failed", err)
		return err
	}

	s.open = false
	s.logger.Info("access granted",
		zap.String("digest", s.fileDigest),
		zap.String("grantee", grantee),
		zap.String("role", role.String()),
	)
	return nil
}
