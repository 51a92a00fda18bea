package command

import "testing"

func TestReplCommand_Metadata(t *testing.T) {
	cmd := ReplCommand()
	if cmd.Name != "repl" {
		t.Errorf("Name = %q, want %q", cmd.Name, "repl")
	}
	if cmd.Action == nil {
		t.Error("Action should not be nil")
	}

	hasAddr := false
	for _, flag := range cmd.Flags {
		if flag.Names()[0] == "addr" {
			hasAddr = true
		}
	}
	if !hasAddr {
		t.Error("repl command missing --addr flag")
	}
}
