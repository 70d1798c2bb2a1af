package main

import (
	"io"
	"strings"
	"testing"
)

func execRoot(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestTriggerRequiresDuration(t *testing.T) {
	err := execRoot(t, "trigger")
	if err == nil || !strings.Contains(err.Error(), "duration") {
		t.Fatalf("trigger without --duration: err = %v", err)
	}
}

func TestPatternRequiresCycleLen(t *testing.T) {
	err := execRoot(t, "pattern")
	if err == nil || !strings.Contains(err.Error(), "cycle-len") {
		t.Fatalf("pattern without --cycle-len: err = %v", err)
	}
}
