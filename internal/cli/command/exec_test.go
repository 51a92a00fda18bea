package command

import (
	"net"
	"testing"

	"github.com/yndnr/rekv-go/internal/resp"
)

func TestExecCommand_SendsGivenVerbAndArgs(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	var verb string
	go fakeServer(t, ln, resp.SimpleString("OK"), &verb)

	app := App()
	err = app.Run([]string{"rekv-cli", "exec", "-a", ln.Addr().String(), "SET", "foo", "bar"})
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if verb != "SET" {
		t.Errorf("verb sent = %q, want SET", verb)
	}
}

func TestExecCommand_RequiresAVerb(t *testing.T) {
	app := App()
	if err := app.Run([]string{"rekv-cli", "exec"}); err == nil {
		t.Fatal("expected an error when no command verb is given")
	}
}
