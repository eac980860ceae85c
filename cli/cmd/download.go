package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hashcloud-io/hashcloud/digest"
)

// DownloadCommand returns the download command. The saved filename comes
// from the account's file record, so the command resolves the digest
// against the remote list first.
func DownloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "Download a file by content hash",
		ArgsUsage: "<hash>",
		Flags: append(ConnectionFlags(),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Destination directory",
			},
		),
		Action: downloadAction,
	}
}

func downloadAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("download requires exactly one content hash", 1)
	}
	fileDigest := c.Args().First()
	if !digest.Valid(fileDigest) {
		return cli.Exit(fmt.Sprintf("malformed content hash: %s", fileDigest), 1)
	}

	ctrl, cfg, err := newController(c)
	if err != nil {
		return err
	}

	records, err := ctrl.Refresh(c.Context)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	filename := ""
	for _, rec := range records {
		if rec.Digest == fileDigest {
			filename = rec.Filename
			break
		}
	}
	if filename == "" {
		return cli.Exit(fmt.Sprintf("no accessible file with hash %s", fileDigest), 1)
	}

	destDir := c.String("out")
	if destDir == "" {
		destDir = cfg.DownloadDir
	}
	if destDir == "" {
		destDir = "."
	}

	path, err := ctrl.Download(c.Context, fileDigest, filename, destDir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Println(path)
	return nil
}
