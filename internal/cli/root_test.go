package cli

import (
	"bytes"
	"testing"
)

func TestNewRootCmdWiring(t *testing.T) {
	cmd := NewRootCmd()

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"version", "query", "history", "log", "init", "completion"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}

	for _, flag := range []string{"config", "data-dir", "watch-file", "database", "attach", "log-level", "verbose"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("root command missing persistent flag %q", flag)
		}
	}

	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("root command should silence cobra's own error printing")
	}
}

// The version flag renders before any config loading, so it works even
// with a broken or missing configuration.
func TestRootCmdVersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	out := stdout.String()
	if want := "leapscope " + Version; !bytes.Contains(stdout.Bytes(), []byte(want)) {
		t.Errorf("version output %q should contain %q", out, want)
	}
}
