package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/rekv-go/internal/cli/repl"
	"github.com/yndnr/rekv-go/internal/cli/respclient"
)

// ReplCommand implements "rekv-cli repl [-a addr]".
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "interactive read-eval-print loop",
		Flags: []cli.Flag{addrFlag()},
		Action: func(c *cli.Context) error {
			client := respclient.New(c.String("addr"))
			defer client.Close()

			return repl.New(client).Run()
		},
	}
}
