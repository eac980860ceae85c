package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hashcloud-io/hashcloud/types"
)

// ShareCommand returns the share command: grant another account manager
// or viewer access to one file.
func ShareCommand() *cli.Command {
	return &cli.Command{
		Name:      "share",
		Usage:     "Grant another account access to a file",
		ArgsUsage: "<hash> <address> <role>",
		Flags:     ConnectionFlags(),
		Action:    shareAction,
	}
}

func shareAction(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.Exit("share requires <hash> <address> <role>", 1)
	}

	role, err := parseRole(c.Args().Get(2))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctrl, _, err := newController(c)
	if err != nil {
		return err
	}

	share := ctrl.NewShare(c.Args().Get(0))
	if err := share.Grant(c.Context, c.Args().Get(1), role); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("granted %s access to %s\n", role, c.Args().Get(1))
	return nil
}

// parseRole accepts role names and their numeric codes.
func parseRole(s string) (types.Role, error) {
	switch strings.ToLower(s) {
	case "manager", "2":
		return types.RoleManager, nil
	case "viewer", "3":
		return types.RoleViewer, nil
	default:
		return types.RoleNone, fmt.Errorf("invalid role %q (must be manager or viewer)", s)
	}
}
