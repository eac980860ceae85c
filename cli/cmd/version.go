package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hashcloud-io/hashcloud/cli/render"
	"github.com/hashcloud-io/hashcloud/types"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func versionString(commit string) string {
	return fmt.Sprintf("%s (commit: %s)", types.Version, commit)
}

// VersionCommand returns the version command. It never contacts the
// service and never touches the wallet.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  OutputFlags(),
		Action: versionAction(commit),
	}
}

func versionAction(commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.Bool("tui") {
			return cli.Exit("--tui is not supported for version", 1)
		}

		r, err := render.NewRenderer(c)
		if err != nil {
			return err
		}
		return r.Render(VersionResponse{
			Version: types.Version,
			Commit:  commit,
		})
	}
}
