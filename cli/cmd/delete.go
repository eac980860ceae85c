package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// DeleteCommand returns the delete command. A delete the server declines
// exits non-zero without marking anything deleted; the record is only
// gone once the server confirms it.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a file by content hash",
		ArgsUsage: "<hash>",
		Flags:     ConnectionFlags(),
		Action:    deleteAction,
	}
}

func deleteAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("delete requires exactly one content hash", 1)
	}

	ctrl, _, err := newController(c)
	if err != nil {
		return err
	}

	del := ctrl.NewDelete(c.Args().First())
	if _, err := del.Confirm(c.Context); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if del.Open() {
		return cli.Exit("server declined the delete", 1)
	}

	fmt.Printf("deleted %s\n", c.Args().First())
	return nil
}
