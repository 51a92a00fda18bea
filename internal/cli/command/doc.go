// Package command provides CLI command definitions for rekv-cli.
//
// It uses urfave/cli/v2 for command parsing and supports a one-shot
// ping, a one-shot exec of an arbitrary command, and an interactive
// REPL mode, all speaking RESP2 over TCP.
package command
