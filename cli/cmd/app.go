package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hashcloud-io/hashcloud/auth"
	"github.com/hashcloud-io/hashcloud/cli/config"
	"github.com/hashcloud-io/hashcloud/gateway"
	"github.com/hashcloud-io/hashcloud/log"
	"github.com/hashcloud-io/hashcloud/wallet"
	"github.com/hashcloud-io/hashcloud/workflow"
)

// loadConfig resolves the effective configuration: file values first,
// then flag overrides. CLI flags always win.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if v := c.String("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v := c.String("keyfile"); v != "" {
		cfg.Keyfile = v
	}
	if v := c.String("signature-cache"); v != "" {
		cfg.SignatureCache = v
	}
	if v := c.Duration("timeout"); v != 0 {
		cfg.Timeout.Duration = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newController builds the full client stack for one invocation: wallet
// from the keyfile, signer over the persisted signature cache, gateway
// against the configured API, all logging as the wallet's account.
func newController(c *cli.Context) (*workflow.Controller, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	w, err := wallet.LoadKeyWallet(cfg.Keyfile)
	if err != nil {
		return nil, nil, fmt.Errorf("load keyfile: %w", err)
	}

	logger := log.New(w.Address())
	signer := auth.NewSigner(w, auth.NewFileStore(cfg.CachePath()), logger)

	gw, err := gateway.New(gateway.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout.Duration,
	})
	if err != nil {
		return nil, nil, err
	}

	ctrl := workflow.NewController(signer, gw, logger, workflow.NewLogReporter(logger))
	return ctrl, cfg, nil
}

// NewApp assembles the hashcloud CLI.
func NewApp(commit string) *cli.App {
	return &cli.App{
		Name:    "hashcloud",
		Usage:   "Content-addressed file storage client",
		Version: versionString(commit),
		Commands: []*cli.Command{
			ListCommand(),
			UploadCommand(),
			DownloadCommand(),
			ShareCommand(),
			DeleteCommand(),
			VersionCommand(commit),
		},
	}
}
