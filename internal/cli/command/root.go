package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/rekv-go/internal/infra/buildinfo"
)

const defaultAddr = "127.0.0.1:6379"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "rekv-cli",
		Usage:   "command-line client for rekv-server",
		Version: buildinfo.String(),
		Commands: []*cli.Command{
			PingCommand(),
			ExecCommand(),
			ReplCommand(),
		},
	}
}

// addrFlag is the -a/--addr flag shared by every subcommand, defined
// per-command rather than on the App so it can follow the subcommand
// name (e.g. "rekv-cli ping -a host:port").
func addrFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "addr",
		Aliases: []string{"a"},
		Usage:   "rekv-server address",
		EnvVars: []string{"REKV_ADDR"},
		Value:   defaultAddr,
	}
}
