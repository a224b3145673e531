package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sambeau/sauce/config"
	"github.com/sambeau/sauce/pkg/sauce"
)

func noEnv(string) string { return "" }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestRunVersion(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	if err := run(context.Background(), []string{"--version"}, stdout, stderr, noEnv); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "sauce version") {
		t.Errorf("expected version output, got %q", stdout.String())
	}
}

func TestRunHelp(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	if err := run(context.Background(), []string{"--help"}, stdout, stderr, noEnv); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	output := stdout.String()
	for _, want := range []string{"sauce watch", "sauce describe", "--config", "--readonly", "SAUCE_CONFIG"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help, got %q", want, output)
		}
	}
}

func TestRunDescribe(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"type", []string{"describe", "vector"}, "Type: vector", false},
		{"json", []string{"describe", "--json", "object"}, `"kind": "type"`, false},
		{"error code", []string{"describe", "CALL-0001"}, "CALL-0001 (call)", false},
		{"missing topic", []string{"describe"}, "", true},
		{"unknown topic", []string{"describe", "strng"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			err := run(context.Background(), tt.args, stdout, &bytes.Buffer{}, noEnv)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestRunInvalidFlag(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	if err := run(context.Background(), []string{"--invalid-flag"}, stdout, stderr, noEnv); err == nil {
		t.Error("expected error for invalid flag")
	}
}

func TestRunMissingConfig(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := run(context.Background(), []string{"--config", "/nonexistent/sauce.yaml", "-e", "count"}, stdout, stderr, noEnv)
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestRunExec(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"Name": "Ada", "items": [1, 2, 3]}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"count", []string{"-e", "count", doc}, "2\n"},
		{"navigate", []string{"-e", ":cd items", "-e", "count", doc}, "/items\n3\n"},
		{"write then read", []string{"-e", "set b true", "-e", "get B", doc}, "null\ntrue\n"},
		{"yaml output", []string{"--output", "yaml", "-e", "select [\"name\"]", doc}, "name: Ada\n"},
		{"no document", []string{"-e", "isEmpty"}, "true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			if err := run(context.Background(), tt.args, stdout, stderr, noEnv); err != nil {
				t.Fatalf("run error: %v (stderr %q)", err, stderr.String())
			}
			if stdout.String() != tt.want {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestRunExecYAMLDocument(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.yaml", "zeta: 1\nalpha:\n  - a\n  - b\n")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	if err := run(context.Background(), []string{"-e", "keys", doc}, stdout, stderr, noEnv); err != nil {
		t.Fatalf("run error: %v", err)
	}
	var keys []string
	if err := json.Unmarshal(stdout.Bytes(), &keys); err != nil {
		t.Fatalf("output %q is not JSON: %v", stdout.String(), err)
	}
	if strings.Join(keys, ",") != "zeta,alpha" {
		t.Errorf("keys = %v", keys)
	}
}

func TestRunExecReadOnly(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"a": 1, "meta": {"b": 1}, "tags": ["x"]}`)

	tests := []struct {
		name string
		args []string
	}{
		{"top level", []string{"-e", "set a 2"}},
		{"nested object", []string{"-e", ":cd meta", "-e", "set b 99"}},
		{"nested vector", []string{"-e", ":cd tags", "-e", "push y"}},
		{"nested text", []string{"-e", ":cd tags/0", "-e", "appendInPlace '!'"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			args := append([]string{"--readonly"}, tt.args...)
			err := run(context.Background(), append(args, doc), stdout, stderr, noEnv)
			if !errors.Is(err, errReported) {
				t.Fatalf("expected reported error, got %v", err)
			}
			if !strings.Contains(stderr.String(), "read-only") {
				t.Errorf("stderr = %q, want a read-only error", stderr.String())
			}
		})
	}
}

func TestRunExecJSONErrors(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `[1, 2]`)
	cfgPath := writeFile(t, dir, "sauce.yaml", "logging:\n  format: json\n")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := run(context.Background(), []string{"--config", cfgPath, "-e", "psuh 3", doc}, stdout, stderr, noEnv)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got %v", err)
	}

	var reported struct {
		Class string   `json:"class"`
		Code  string   `json:"code"`
		Hints []string `json:"hints"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(stderr.Bytes()), &reported); err != nil {
		t.Fatalf("stderr %q is not JSON: %v", stderr.String(), err)
	}
	if reported.Code != "CALL-0001" {
		t.Errorf("code = %q, want CALL-0001", reported.Code)
	}
}

func TestRunBadDocument(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"a": `)

	err := run(context.Background(), []string{"-e", "count", doc}, &bytes.Buffer{}, &bytes.Buffer{}, noEnv)
	if err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestRunInvalidOverride(t *testing.T) {
	err := run(context.Background(), []string{"--log-level", "loud", "-e", "count"}, &bytes.Buffer{}, &bytes.Buffer{}, noEnv)
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestOpenDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", `{"list": [1, [2, 3]]}`)

	shell := config.Defaults().Shell
	shell.Recursive = true
	shell.ReadOnly = true

	doc, err := openDocument(path, shell)
	if err != nil {
		t.Fatal(err)
	}
	im, ok := doc.(*sauce.ImmutableObject)
	if !ok {
		t.Fatalf("document = %T, want *sauce.ImmutableObject", doc)
	}
	if _, ok := im.Get("list").(*sauce.Object); !ok {
		t.Errorf("recursive load left list as %T", im.Get("list"))
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := map[string]string{
		"a.json":     "json",
		"b.YAML":     "yaml",
		"c.yml":      "yaml",
		"d.txt":      "auto",
		"dir.v2/doc": "auto",
	}
	for path, want := range tests {
		if got := formatFromExt(path); got != want {
			t.Errorf("formatFromExt(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "DEBUG",
		"WARN":  "WARN",
		"error": "ERROR",
		"nope":  "INFO",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, config.LoggingConfig{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("json log = %q", out)
	}
}

func TestNewLoggerText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, config.LoggingConfig{Level: "info", Format: "text"})
	logger.Info("changed", "keys", []string{"a"}, "empty", "")

	out := buf.String()
	if !strings.Contains(out, "changed") || !strings.Contains(out, "keys=") {
		t.Errorf("text log = %q", out)
	}
	if strings.Contains(out, "empty=") {
		t.Errorf("empty attribute was logged: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color codes written to a buffer: %q", out)
	}
}
