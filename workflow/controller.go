// Package workflow orchestrates the four signed file operations: upload,
// download, share, and delete.
//
// Each operation is a short-lived, independent sequence: gather inputs,
// build the canonical action message, obtain a signature, submit, interpret
// the response. Within one workflow, signing strictly precedes submission
// and submission strictly precedes interpretation. Across workflows nothing
// is ordered; a share and a delete on different files may be in flight at
// once, each with its own state.
//
// Failures stay inside the workflow that produced them. Nothing here ever
// retries: a failed step is abandoned and the user re-triggers.
package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hashcloud-io/hashcloud/auth"
	"github.com/hashcloud-io/hashcloud/gateway"
	"github.com/hashcloud-io/hashcloud/log"
	"github.com/hashcloud-io/hashcloud/types"
)

// Controller creates workflows bound to one account, one signer, and one
// gateway. Controllers hold no per-workflow state; every workflow value
// carries its own.
type Controller struct {
	signer   *auth.Signer
	gateway  *gateway.Client
	logger   *log.Logger
	reporter Reporter
}

// NewController wires a workflow controller. A nil reporter falls back to
// log-only reporting.
func NewController(signer *auth.Signer, gw *gateway.Client, logger *log.Logger, reporter Reporter) *Controller {
	if logger == nil {
		logger = log.NewNop()
	}
	if reporter == nil {
		reporter = NewLogReporter(logger)
	}
	return &Controller{
		signer:   signer,
		gateway:  gw,
		logger:   logger,
		reporter: reporter,
	}
}

// Account returns the acting account's checksummed address.
func (c *Controller) Account() string {
	return c.signer.Address()
}

// Logger returns the controller's account-scoped logger, for surfaces that
// emit their own entries alongside workflow ones.
func (c *Controller) Logger() *log.Logger {
	return c.logger
}

// Refresh fetches the account's file list using the cached list-access
// signature. The result replaces any previously held records wholesale.
func (c *Controller) Refresh(ctx context.Context) ([]types.RemoteFileRecord, error) {
	sig, err := c.signer.ListAccess(ctx)
	if err != nil {
		return nil, fmt.Errorf("workflow: list refresh: %w", err)
	}

	records, err := c.gateway.ListFiles(ctx, c.signer.Address(), sig)
	if err != nil {
		return nil, fmt.Errorf("workflow: list refresh: %w", err)
	}
	return records, nil
}

// workflowLogger returns a child logger tagged with a fresh invocation id.
func (c *Controller) workflowLogger(action types.ActionKind) *log.Logger {
	return c.logger.WithWorkflow(uuid.NewString(), string(action))
}
