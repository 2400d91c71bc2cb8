package testutil

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Execute runs a cobra command and returns everything it printed to stdout.
// pterm printers cache their writer at init, so the pipe has to be handed to
// them explicitly; styling is disabled so assertions see plain text instead
// of ANSI escape sequences.
func Execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	pterm.SetDefaultOutput(w)
	pterm.DisableStyling()

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	c.SetArgs(args)
	err = c.Execute()

	w.Close()
	os.Stdout = old
	pterm.SetDefaultOutput(old)
	out := <-outC

	return strings.TrimSpace(out), err
}
