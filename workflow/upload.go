package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hashcloud-io/hashcloud/intake"
	"github.com/hashcloud-io/hashcloud/log"
	"github.com/hashcloud-io/hashcloud/types"
)

// UploadState is the upload workflow's position in its state machine.
type UploadState int

const (
	UploadIdle UploadState = iota
	UploadFilesSelected
	UploadSummarized
	UploadSigning
	UploadSubmitting
	UploadResultReceived
)

// String returns the state name.
func (s UploadState) String() string {
	switch s {
	case UploadFilesSelected:
		return "filesSelected"
	case UploadSummarized:
		return "summarized"
	case UploadSigning:
		return "signing"
	case UploadSubmitting:
		return "submitting"
	case UploadResultReceived:
		return "resultReceived"
	default:
		return "idle"
	}
}

// ErrBadTransition is returned when a workflow step is invoked outside the
// state that allows it.
var ErrBadTransition = errors.New("workflow: step not allowed in current state")

// Summary is the selection-level aggregate shown before signing.
type Summary struct {
	Owner     string `json:"owner"`
	FileCount int    `json:"fileCount"`
	TotalSize int64  `json:"totalSize"`
	Oversize  int    `json:"oversize"`
}

// Upload is one upload workflow invocation.
//
// The signed digest set is the accepted digests in selection order.
// Oversized descriptors travel with the request payload but are absent
// from the commitment: the server cannot prove the client intended them
// and must refuse to persist any digest outside the signed message.
type Upload struct {
	ctrl   *Controller
	logger *log.Logger

	state       UploadState
	selection   *intake.Result
	anyAccepted bool
}

// NewUpload starts an upload workflow in the idle state.
func (c *Controller) NewUpload() *Upload {
	return &Upload{
		ctrl:   c,
		logger: c.workflowLogger(types.ActionUpload),
		state:  UploadIdle,
	}
}

// State returns the current workflow state.
func (u *Upload) State() UploadState { return u.state }

// Descriptors returns the selected descriptors in selection order.
func (u *Upload) Descriptors() []*types.FileDescriptor {
	if u.selection == nil {
		return nil
	}
	return u.selection.Descriptors
}

// Select attaches an intake result. Only valid from idle.
func (u *Upload) Select(sel *intake.Result) error {
	if u.state != UploadIdle {
		return fmt.Errorf("%w: select in %s", ErrBadTransition, u.state)
	}
	u.selection = sel
	u.state = UploadFilesSelected
	u.logger.Info("files selected",
		zap.Int("files", len(sel.Descriptors)),
		zap.Int("accepted", sel.AcceptedCount),
	)
	return nil
}

// Summarize produces the pre-signing aggregate and advances the workflow.
func (u *Upload) Summarize() (Summary, error) {
	if u.state != UploadFilesSelected {
		return Summary{}, fmt.Errorf("%w: summarize in %s", ErrBadTransition, u.state)
	}
	u.state = UploadSummarized
	return Summary{
		Owner:     u.ctrl.Account(),
		FileCount: u.selection.AcceptedCount,
		TotalSize: u.selection.TotalAcceptedSize,
		Oversize:  len(u.selection.Descriptors) - u.selection.AcceptedCount,
	}, nil
}

// Submit signs the commitment and uploads the selection.
//
// A wallet refusal aborts before any network traffic and returns the
// workflow to summarized for an explicit re-trigger; so does a transport
// failure after the request was sent (there is no cancelling an in-flight
// submission, only waiting out its terminal response). On success every
// descriptor's submission state is set from the server's accepted digests
// and the workflow reaches resultReceived.
func (u *Upload) Submit(ctx context.Context) error {
	if u.state != UploadSummarized {
		return fmt.Errorf("%w: submit in %s", ErrBadTransition, u.state)
	}

	u.state = UploadSigning
	msg := types.NewActionMessage(types.ActionUpload, u.selection.AcceptedDigests()...)
	sig, err := u.ctrl.signer.Authorize(ctx, msg)
	if err != nil {
		u.state = UploadSummarized
		u.ctrl.reporter.Report(SeverityError, "upload authorization failed", err)
		return err
	}

	u.state = UploadSubmitting
	stored, err := u.ctrl.gateway.Upload(ctx, u.ctrl.Account(), sig, u.selection.Descriptors)
	if err != nil {
		u.state = UploadSummarized
		u.ctrl.reporter.Report(SeverityError, "upload submission failed", err)
		return err
	}

	storedSet := make(map[string]struct{}, len(stored))
	for _, d := range stored {
		storedSet[d] = struct{}{}
	}
	for _, d := range u.selection.Descriptors {
		if _, ok := storedSet[d.Digest]; ok && d.Digest != "" {
			d.State = types.SubmissionAccepted
			u.anyAccepted = true
		} else {
			d.State = types.SubmissionRejected
		}
	}

	u.state = UploadResultReceived
	u.logger.Info("upload result received",
		zap.Int("submitted", len(u.selection.Descriptors)),
		zap.Int("stored", len(stored)),
	)
	return nil
}

// Done exits the terminal state. If any file was accepted it performs one
// list refresh and returns the fresh records; otherwise it returns nil.
func (u *Upload) Done(ctx context.Context) ([]types.RemoteFileRecord, error) {
	if u.state != UploadResultReceived {
		return nil, fmt.Errorf("%w: done in %s", ErrBadTransition, u.state)
	}
	accepted := u.anyAccepted
	u.state = UploadIdle
	u.selection = nil
	u.anyAccepted = false

	if !accepted {
		return nil, nil
	}
	return u.ctrl.Refresh(ctx)
}

// Cancel abandons the workflow before submission. Nothing was sent, so
// there is nothing to undo server-side; pending descriptors are discarded.
func (u *Upload) Cancel() error {
	switch u.state {
	case UploadIdle, UploadFilesSelected, UploadSummarized, UploadSigning:
		u.state = UploadIdle
		u.selection = nil
		u.anyAccepted = false
		return nil
	default:
		return fmt.Errorf("%w: cancel in %s", ErrBadTransition, u.state)
	}
}
