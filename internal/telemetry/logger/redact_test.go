package logger

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"Password", true},
		{"db_password", true},
		{"client_secret", true},
		{"auth_token", true},
		{"target", true},
		{"host", false},
		{"command", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsSensitiveKey(tt.key); got != tt.want {
				t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestLogger_RedactsSensitiveAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "text", Output: &buf})

	log.Info("connecting", "host", "127.0.0.1", "password", "s3cret")

	out := buf.String()
	if strings.Contains(out, "s3cret") {
		t.Errorf("output leaks the password: %s", out)
	}
	if !strings.Contains(out, redactedValue) {
		t.Errorf("output missing redaction marker: %s", out)
	}
	if !strings.Contains(out, "127.0.0.1") {
		t.Errorf("output should keep non-sensitive attrs: %s", out)
	}
}

func TestLogger_RedactsGroupAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Info("dialing", "conn", map[string]any{"host": "localhost"}, "target", "redis://u:pw@localhost:6379/0")

	out := buf.String()
	if strings.Contains(out, "pw@localhost") {
		t.Errorf("output leaks the target credentials: %s", out)
	}
}

func TestRedactArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "auth single",
			args: []string{"AUTH", "hunter2"},
			want: []string{"AUTH", redactedValue},
		},
		{
			name: "auth with user",
			args: []string{"auth", "app", "hunter2"},
			want: []string{"auth", redactedValue, redactedValue},
		},
		{
			name: "hello with auth",
			args: []string{"HELLO", "3", "AUTH", "app", "hunter2"},
			want: []string{"HELLO", "3", "AUTH", "app", redactedValue},
		},
		{
			name: "hello plain",
			args: []string{"HELLO", "3"},
			want: []string{"HELLO", "3"},
		},
		{
			name: "config set requirepass",
			args: []string{"CONFIG", "SET", "requirepass", "hunter2"},
			want: []string{"CONFIG", "SET", "requirepass", redactedValue},
		},
		{
			name: "config set maxmemory",
			args: []string{"CONFIG", "SET", "maxmemory", "100mb"},
			want: []string{"CONFIG", "SET", "maxmemory", "100mb"},
		},
		{
			name: "ordinary command",
			args: []string{"GET", "password"},
			want: []string{"GET", "password"},
		},
		{
			name: "empty",
			args: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]string(nil), tt.args...)
			got := RedactArgs(tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RedactArgs(%v) = %v, want %v", tt.args, got, tt.want)
			}
			if !reflect.DeepEqual(tt.args, in) {
				t.Errorf("RedactArgs mutated its input: %v", tt.args)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "text", Output: &buf})

	log.Debug("quiet")
	log.Info("quiet")
	log.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("output contains filtered levels: %s", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("output missing warn line: %s", out)
	}
}
