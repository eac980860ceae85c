package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/hashcloud-io/hashcloud/cli/render"
	"github.com/hashcloud-io/hashcloud/cli/tui"
	"github.com/hashcloud-io/hashcloud/types"
)

// ListCommand returns the list command. List is read-only: it signs the
// list-access message (once per account, cached thereafter) and renders
// the account's file records.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List the account's files",
		Flags:  append(ConnectionFlags(), OutputFlags()...),
		Action: listAction,
	}
}

// FileListItem is one record in the list command output. Role is the
// acting account's role on the file; it tells the user which further
// actions (share, delete) the server will accept from them.
type FileListItem struct {
	Digest      string `json:"hash"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        string `json:"size"`
	Uploaded    string `json:"uploaded"`
	Role        string `json:"role"`
}

func listItems(account string, records []types.RemoteFileRecord) []FileListItem {
	items := make([]FileListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, FileListItem{
			Digest:      rec.Digest,
			Filename:    rec.Filename,
			ContentType: rec.ContentType,
			Size:        render.HumanSize(rec.ContentSize),
			Uploaded:    rec.Timestamp.Format("2006-01-02 15:04:05"),
			Role:        rec.RoleOf(account).String(),
		})
	}
	return items
}

func listAction(c *cli.Context) error {
	ctrl, _, err := newController(c)
	if err != nil {
		return err
	}

	records, err := ctrl.Refresh(c.Context)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("tui") {
		return tui.Browse(ctrl.Account(), records)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	return r.Render(listItems(ctrl.Account(), records))
}
