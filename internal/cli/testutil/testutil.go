// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// ExecuteCommand runs a cobra command with the given args, capturing
// stdout and stderr. Args are always set explicitly so the test
// binary's own flags never leak into the command.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	if args == nil {
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// AssertContains fails the test when s does not contain expected.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("output should contain %q, got: %s", expected, s)
	}
}

// AssertNotContains fails the test when s contains unexpected.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("output should not contain %q, got: %s", unexpected, s)
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// AssertNoANSI fails the test when s contains ANSI escape codes.
// Command output is plain text; only the dashboard styles its output.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("output should not contain ANSI escape codes, got: %q", s)
	}
}
