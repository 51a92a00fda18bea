package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/rekv-go/internal/cli/respclient"
)

// ExecCommand implements "rekv-cli exec [-a addr] VERB [ARG...]".
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "send one command and print the decoded reply",
		ArgsUsage: "VERB [ARG...]",
		Flags:     []cli.Flag{addrFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("exec requires a command verb")
			}

			client := respclient.New(c.String("addr"))
			defer client.Close()

			reply, err := client.Send(c.Args().Slice()...)
			if err != nil {
				return fmt.Errorf("exec %s: %w", c.String("addr"), err)
			}

			fmt.Println(respclient.Format(reply))
			return nil
		},
	}
}
