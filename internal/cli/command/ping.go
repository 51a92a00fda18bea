package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/rekv-go/internal/cli/respclient"
)

// PingCommand implements "rekv-cli ping [-a addr] [message]".
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "send a PING (or ECHO, with a message) and print the reply",
		ArgsUsage: "[message]",
		Flags:     []cli.Flag{addrFlag()},
		Action: func(c *cli.Context) error {
			client := respclient.New(c.String("addr"))
			defer client.Close()

			args := []string{"PING"}
			if c.NArg() > 0 {
				args = []string{"ECHO", c.Args().First()}
			}

			reply, err := client.Send(args...)
			if err != nil {
				return fmt.Errorf("ping %s: %w", c.String("addr"), err)
			}

			fmt.Println(respclient.Format(reply))
			return nil
		},
	}
}
