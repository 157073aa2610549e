package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
)

func TestRootCommand_Subcommands(t *testing.T) {
	rootCmd := NewRootCommand()

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"set-env", "deploy", "doctor"})
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, model.ExitGeneralError, env.run("publish", "demo"))
	assert.Contains(t, env.output(), "unknown command")
}

// TestExecute_RecoversPanics checks that a panic inside a command is
// logged and turned into exit code 1.
func TestExecute_RecoversPanics(t *testing.T) {
	env := newTestEnv(t)
	rootCmd := newRootCommand(env.deps())
	rootCmd.AddCommand(&cobra.Command{
		Use: "boom",
		RunE: func(cmd *cobra.Command, args []string) error {
			panic("boom")
		},
	})
	rootCmd.SetArgs([]string{"boom"})

	code := execute(rootCmd, &env.stderr)

	assert.Equal(t, model.ExitGeneralError, code)
	assert.Contains(t, env.output(), "unexpected error")
	assert.Contains(t, env.output(), "panic=boom")
}

func TestVerboseEnablesDebugOutput(t *testing.T) {
	env := newTestEnv(t)

	code := env.run("-v", "deploy", "demo")

	assert.Equal(t, model.ExitSuccess, code, env.output())
	assert.Contains(t, env.output(), "DBG")
}
