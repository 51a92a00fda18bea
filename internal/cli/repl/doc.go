// Package repl provides the interactive read-eval-print loop for
// rekv-cli: it reads a line, splits it into arguments, sends it to a
// rekv-server over RESP2, and prints the decoded reply.
package repl
