package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunPrintsHintsForUnknownCommand(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"bookingss"}, &stderr)
	if code != 2 {
		t.Fatalf("expected invalid usage code 2, got %d", code)
	}
	out := stderr.String()
	if !strings.Contains(out, `unknown command "bookingss"`) {
		t.Fatalf("expected unknown command error, got: %q", out)
	}
	if !strings.Contains(out, `did you mean "bookings"`) {
		t.Fatalf("expected suggestion, got: %q", out)
	}
	if !strings.Contains(out, "next: skydesk --help") {
		t.Fatalf("expected help hint, got: %q", out)
	}
}

func TestRunRequiresLoginForListCommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stderr bytes.Buffer
	code := run([]string{"--state-dir", t.TempDir(), "locations", "list"}, &stderr)
	if code != 3 {
		t.Fatalf("expected auth required code 3, got %d", code)
	}
	if !strings.Contains(stderr.String(), "next: skydesk login") {
		t.Fatalf("expected login hint, got: %q", stderr.String())
	}
}
