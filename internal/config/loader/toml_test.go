package loader

import (
	"errors"
	"io/fs"
	"testing"
)

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[logging]
level = "debug"
file = "/tmp/ned.log"

[editor]
maxRows = 500
quitKey = "Ctrl+X"
`)

	loader := NewTOMLLoaderWithFS(memfs, "/config.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := GetByPath(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
	if val, ok := GetByPath(config, "editor.maxRows"); !ok || val != int64(500) {
		t.Errorf("editor.maxRows = %v (%T), want 500", val, val)
	}
	if val, ok := GetByPath(config, "editor.quitKey"); !ok || val != "Ctrl+X" {
		t.Errorf("editor.quitKey = %v, want 'Ctrl+X'", val)
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	memfs := NewMemFS()
	loader := NewTOMLLoaderWithFS(memfs, "/nonexistent.toml")

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if config != nil {
		t.Error("expected nil config for non-existent file")
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", `
[editor
maxRows = 4
`)

	loader := NewTOMLLoaderWithFS(memfs, "/invalid.toml")
	_, err := loader.Load()
	if err == nil {
		t.Fatal("expected error for invalid TOML")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if pe.Path != "/invalid.toml" {
		t.Errorf("Path = %q, want '/invalid.toml'", pe.Path)
	}
	if pe.Line == 0 {
		t.Error("expected a line number in the parse error")
	}
}

func TestTOMLLoader_ReadError(t *testing.T) {
	loader := NewTOMLLoaderWithFS(deniedFS{}, "/config.toml")
	_, err := loader.Load()
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("err = %v, want fs.ErrPermission", err)
	}
}

func TestTOMLLoader_Empty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"comment only", "# nothing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memfs := NewMemFS()
			memfs.AddFile("/empty.toml", tt.content)

			config, err := NewTOMLLoaderWithFS(memfs, "/empty.toml").Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if config == nil || len(config) != 0 {
				t.Errorf("config = %v, want empty map", config)
			}
		})
	}
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "bad"}, "parse error in a.toml at line 3, column 7: bad"},
		{ParseError{Path: "a.toml", Line: 3, Message: "bad"}, "parse error in a.toml at line 3: bad"},
		{ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
