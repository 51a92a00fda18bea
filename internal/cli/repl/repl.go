package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/rekv-go/internal/cli/respclient"
)

// REPL is the interactive read-eval-print loop.
type REPL struct {
	input   io.Reader
	output  io.Writer
	client  *respclient.Client
	history *History
}

// New creates a REPL that sends commands to client.
func New(client *respclient.Client) *REPL {
	return &REPL{
		input:   os.Stdin,
		output:  os.Stdout,
		client:  client,
		history: NewHistory(),
	}
}

// Run starts the loop. It returns nil on EOF (Ctrl-D) or "quit".
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: could not load history: %v\n", err)
	}
	defer r.history.Save()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "rekv> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if line == "quit" || line == "exit" {
			return nil
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "error: %v\n", err)
		}
	}
}

func (r *REPL) execute(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	reply, err := r.client.Send(args...)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output, respclient.Format(reply))
	return nil
}
