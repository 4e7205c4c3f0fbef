package main

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/dshills/ned/internal/app"
	"github.com/dshills/ned/internal/config"
	"github.com/dshills/ned/internal/renderer/backend"
)

func parse(t *testing.T, args ...string) (map[string]any, string, string) {
	t.Helper()

	cmd := newRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) failed: %v", args, err)
	}
	opts, err := buildOptions(cmd, cmd.Flags().Args())
	if err != nil {
		t.Fatalf("buildOptions failed: %v", err)
	}
	return opts.Overrides, opts.ConfigPath, opts.File
}

func TestBuildOptions_Defaults(t *testing.T) {
	overrides, cfgPath, file := parse(t)

	if len(overrides) != 0 {
		t.Errorf("overrides = %v, want none", overrides)
	}
	if cfgPath != "" || file != "" {
		t.Errorf("config = %q, file = %q; want empty", cfgPath, file)
	}
}

func TestBuildOptions_Flags(t *testing.T) {
	overrides, cfgPath, file := parse(t,
		"-c", "/etc/ned.yaml",
		"--log-level", "debug",
		"--log-file", "",
		"--max-rows", "0",
		"notes.txt",
	)

	if cfgPath != "/etc/ned.yaml" {
		t.Errorf("config = %q", cfgPath)
	}
	if file != "notes.txt" {
		t.Errorf("file = %q", file)
	}
	if overrides[config.PathLogLevel] != "debug" {
		t.Errorf("log level override = %v", overrides[config.PathLogLevel])
	}
	if v, ok := overrides[config.PathLogFile]; !ok || v != "" {
		t.Errorf("explicit empty log file should override, got %v, %v", v, ok)
	}
	if v, ok := overrides[config.PathMaxRows]; !ok || v != 0 {
		t.Errorf("explicit max rows should override, got %v, %v", v, ok)
	}
}

func TestRun_TooManyArgs(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"a.txt", "b.txt"}, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if !strings.Contains(stdout.String(), version) {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRun_InvalidConfigFailsBeforeTerminal(t *testing.T) {
	t.Setenv("NED_LOG_FILE", "")

	var stderr bytes.Buffer
	code := run([]string{"--config", t.TempDir() + "/missing.toml"}, &stderr)
	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "config file not found") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

type emptyFS struct{}

func (emptyFS) ReadFile(string) ([]byte, error)  { return nil, fs.ErrNotExist }
func (emptyFS) Stat(string) (fs.FileInfo, error) { return nil, fs.ErrNotExist }

type emptyEnv struct{}

func (emptyEnv) Load() (map[string]any, error) { return nil, nil }

var errRestore = errors.New("restore failed")

// lateFailBackend restores cleanly when Run ends but fails the restore
// requested by the final application shutdown.
type lateFailBackend struct {
	*backend.NullBackend
}

func (b lateFailBackend) Shutdown() error {
	_ = b.NullBackend.Shutdown()
	if _, n := b.Calls(); n > 1 {
		return errRestore
	}
	return nil
}

func TestRunSession_JoinsShutdownError(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"clean quit", "\x11", nil},
		{"input exhausted", "x", backend.ErrScriptExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			application, err := app.New(app.Options{
				Version:   version,
				ConfigFS:  emptyFS{},
				Env:       emptyEnv{},
				LogOutput: &bytes.Buffer{},
			})
			if err != nil {
				t.Fatalf("app.New() = %v", err)
			}

			nb := backend.NewNullBackend(24, 80)
			nb.FeedString(tt.input)

			err = runSession(application, lateFailBackend{nb})
			if !errors.Is(err, errRestore) {
				t.Fatalf("runSession() = %v, want the shutdown error", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("runSession() = %v, lost the run error", err)
			}
			if nb.RawMode() {
				t.Error("terminal left in raw mode")
			}
		})
	}
}
