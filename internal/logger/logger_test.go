package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbsmedya/commentetl/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %v, expected %v", tt.input, level.String(), tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{
			name:    "json format info level",
			cfg:     &config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
			wantErr: false,
		},
		{
			name:    "text format stderr",
			cfg:     &config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"},
			wantErr: false,
		},
		{
			name:    "file output",
			cfg:     &config.LoggingConfig{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "etl.log")},
			wantErr: false,
		},
		{
			name:    "unwritable file output",
			cfg:     &config.LoggingConfig{Level: "info", Format: "json", Output: filepath.Join(t.TempDir(), "missing", "etl.log")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if logger == nil && !tt.wantErr {
				t.Error("New() returned nil logger without error")
			}
		})
	}
}

func TestNewDefaultAndNop(t *testing.T) {
	if NewDefault() == nil {
		t.Fatal("NewDefault() returned nil")
	}
	nop := NewNop()
	nop.Infow("discarded", "k", "v")
	_ = nop.Sync()
}

func TestContextFieldsAreEncoded(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	log.WithCommand("merge").
		WithFile("batch/a.csv").
		WithTable("Users").
		WithFields(map[string]interface{}{"rows": 3, "columns": 2}).
		Info("loaded")
	_ = log.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}

	want := map[string]interface{}{
		"msg":     "loaded",
		"command": "merge",
		"file":    "batch/a.csv",
		"table":   "Users",
		"rows":    float64(3),
		"columns": float64(2),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("field %s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}
