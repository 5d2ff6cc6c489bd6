package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(16)
	if err != nil {
		t.Fatalf("generatePassword: %v", err)
	}
	b, _ := generatePassword(16)
	if len(a) != 16 {
		t.Errorf("expected 16 characters, got %d", len(a))
	}
	if a == b {
		t.Error("two generated passwords are identical")
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "tigertrack ") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestInitThenStats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tt.sqlite3")
	t.Chdir(t.TempDir())

	run := func(args ...string) string {
		t.Helper()
		configFile = ""
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(append(args, "--db", dbPath, "--log-level", "error"))
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	if out := run("init", "-u", "desk"); !strings.Contains(out, "Username: desk") {
		t.Errorf("init output missing username: %q", out)
	}
	if out := run("init"); !strings.Contains(out, "already has an admin") {
		t.Errorf("second init should be a no-op: %q", out)
	}
	if out := run("stats"); !strings.Contains(out, "Pending:     0") || !strings.Contains(out, "Last sweep:  never") {
		t.Errorf("unexpected stats output: %q", out)
	}
	if out := run("sweep"); !strings.Contains(out, "Expired (found):  0") {
		t.Errorf("unexpected sweep output: %q", out)
	}
}
