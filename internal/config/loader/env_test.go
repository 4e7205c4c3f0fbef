package loader

import (
	"testing"
)

func staticEnv(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestEnvLoader_Load(t *testing.T) {
	loader := NewEnvLoader("NED_")
	loader.environ = staticEnv(
		"NED_LOG_LEVEL=debug",
		"NED_MAX_ROWS=250",
		"NED_QUIT_KEY=Ctrl+X",
		"HOME=/root",
		"OTHER_LOG_LEVEL=error",
	)

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := GetByPath(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
	if val, ok := GetByPath(config, "editor.maxRows"); !ok || val != "250" {
		t.Errorf("editor.maxRows = %v (%T), want '250'", val, val)
	}
	if val, ok := GetByPath(config, "editor.quitKey"); !ok || val != "Ctrl+X" {
		t.Errorf("editor.quitKey = %v, want 'Ctrl+X'", val)
	}
	if len(config) != 2 {
		t.Errorf("config has %d sections, want 2: %v", len(config), config)
	}
}

func TestEnvLoader_ProcessEnvironment(t *testing.T) {
	t.Setenv("NED_LOG_FILE", "/var/tmp/ned.log")

	config, err := NewEnvLoader("NED_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, _ := GetByPath(config, "logging.file"); val != "/var/tmp/ned.log" {
		t.Errorf("logging.file = %v, want '/var/tmp/ned.log'", val)
	}
}

func TestEnvLoader_EmptyValue(t *testing.T) {
	loader := NewEnvLoader("NED_")
	loader.environ = staticEnv("NED_LOG_FILE=")

	config, _ := loader.Load()
	val, ok := GetByPath(config, "logging.file")
	if !ok || val != "" {
		t.Errorf("logging.file = %v, %v; want empty string present", val, ok)
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	loader := NewEnvLoader("NED_")
	loader.environ = staticEnv("NED_EDITOR_MAX_ROWS=9")

	config, _ := loader.Load()
	if val, ok := GetByPath(config, "editor.maxRows"); !ok || val != "9" {
		t.Errorf("editor.maxRows = %v, want 9", val)
	}
}

func TestEnvLoader_CustomMapping(t *testing.T) {
	loader := NewEnvLoaderWithMapping("X_", map[string]string{"X_ROWS": "editor.maxRows"})
	loader.environ = staticEnv("X_ROWS=3")

	config, _ := loader.Load()
	if val, _ := GetByPath(config, "editor.maxRows"); val != "3" {
		t.Errorf("editor.maxRows = %v, want '3'", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("NED_")

	tests := []struct {
		env  string
		want string
	}{
		{"NED_EDITOR_QUIT_KEY", "editor.quitKey"},
		{"NED_LOGGING_LEVEL", "logging.level"},
		{"NED_EDITOR_MAX_ROWS", "editor.maxRows"},
		{"NED_DEBUG", "debug"},
	}

	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestEnvLoader_ValuesStayStrings(t *testing.T) {
	loader := NewEnvLoader("NED_")
	loader.environ = staticEnv(
		"NED_QUIT_KEY=1",
		"NED_LOG_FILE=off",
		"NED_LOG_LEVEL=true",
	)

	config, _ := loader.Load()

	tests := []struct {
		path string
		want string
	}{
		{"editor.quitKey", "1"},
		{"logging.file", "off"},
		{"logging.level", "true"},
	}
	for _, tt := range tests {
		if val, _ := GetByPath(config, tt.path); val != tt.want {
			t.Errorf("%s = %v (%T), want %q", tt.path, val, val, tt.want)
		}
	}
}
