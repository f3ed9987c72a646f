package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args and returns what it wrote to stdout
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	defer func() { os.Stdout = oldStdout }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SetErr(io.Discard)
	execErr := cmd.Execute()

	w.Close()
	return <-done, execErr
}
