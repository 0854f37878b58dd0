package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stagecraft.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRealMainExitCodes(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "run.log")
	script := "function on_start()\n  log(\"started\", \"debug\")\nend\n"
	if err := os.WriteFile(filepath.Join(dir, "main.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	good := writeConfig(t, fmt.Sprintf(`
[loop]
target_fps = 0

[assets]
manifest = ""

[scripts]
dir = %q
entry = "main.lua"

[logging]
level = "debug"
file = %q
`, dir, logFile))
	broken := writeConfig(t, "[loop\ntarget_fps = ")

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"headless run", []string{"-config", good, "-headless", "-frames", "3"}, exitOK, ""},
		{"unknown profile", []string{"-config", good, "-headless", "-profile", "gpu"}, exitUsage, "unknown profile mode"},
		{"bad flag", []string{"-nope"}, exitUsage, "flag provided but not defined"},
		{"broken config", []string{"-config", broken}, exitError, "config:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := realMain(tt.args, &stderr); code != tt.code {
				t.Fatalf("exit code = %d, want %d; stderr %q", code, tt.code, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr = %q, want it to mention %q", stderr.String(), tt.stderr)
			}
		})
	}

	// the deferred Sync flushed the run's log lines before realMain returned
	if info, err := os.Stat(logFile); err != nil || info.Size() == 0 {
		t.Errorf("log file not written: %v", err)
	}
}
