package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hashcloud-io/hashcloud/cli/render"
	"github.com/hashcloud-io/hashcloud/intake"
	"github.com/hashcloud-io/hashcloud/types"
)

// UploadCommand returns the upload command. It hashes the selected files,
// prints the pre-signing summary, signs the digest commitment, and
// submits everything in one multipart request.
func UploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Hash, sign, and upload files",
		ArgsUsage: "<file> [<file>...]",
		Flags:     append(ConnectionFlags(), OutputFlags()...),
		Action:    uploadAction,
	}
}

func uploadAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("upload requires at least one file", 1)
	}
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for upload", 1)
	}

	ctrl, _, err := newController(c)
	if err != nil {
		return err
	}

	sel, err := intake.Process(c.Context, c.Args().Slice())
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading files: %v", err), 1)
	}

	u := ctrl.NewUpload()
	if err := u.Select(sel); err != nil {
		return err
	}
	summary, err := u.Summarize()
	if err != nil {
		return err
	}

	sugar := ctrl.Logger().Sugar()
	sugar.Infof("uploading %d file(s), %s total, as %s",
		summary.FileCount, render.HumanSize(summary.TotalSize), summary.Owner)
	for _, fd := range u.Descriptors() {
		if fd.Oversize {
			sugar.Warnf("%s exceeds %s and will be refused",
				fd.Name, render.HumanSize(types.MaxFileSize))
		}
	}

	if err := u.Submit(c.Context); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	results := uploadResults(u.Descriptors())
	if _, err := u.Done(c.Context); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	return r.Render(results)
}

// UploadResult is one file's outcome in the upload command output.
type UploadResult struct {
	Name   string `json:"name"`
	Digest string `json:"hash,omitempty"`
	Size   string `json:"size"`
	State  string `json:"state"`
}

func uploadResults(descriptors []*types.FileDescriptor) []UploadResult {
	results := make([]UploadResult, 0, len(descriptors))
	for _, fd := range descriptors {
		results = append(results, UploadResult{
			Name:   fd.Name,
			Digest: fd.Digest,
			Size:   render.HumanSize(fd.Size),
			State:  fd.State.String(),
		})
	}
	return results
}
