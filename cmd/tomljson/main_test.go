// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/tomltree/ast"
	"go.uber.org/zap"
)

const testInput = "[server]\nhost = \"localhost\"\nport = [80, 443]\n"

const testOutput = `{"server":{"host":{"type":"string","value":"localhost"},"port":{"type":"array","value":[{"type":"integer","value":"80"},{"type":"integer","value":"443"}]}}}` + "\n"

// runCmd executes the root command with args and stdin, and returns its
// standard output and error streams.
func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errs bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin))
	if args == nil {
		args = []string{} // otherwise cobra reads os.Args
	}
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errs)
	err := cmd.Execute()
	return out.String(), errs.String(), err
}

func TestStdin(t *testing.T) {
	out, _, err := runCmd(t, testInput)
	if err != nil {
		t.Fatalf("Execute: unexpected error: %v", err)
	}
	if out != testOutput {
		t.Errorf("Output: got %q, want %q", out, testOutput)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	if err := os.WriteFile(a, []byte(testInput), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("x = 1.5\n"), 0600); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCmd(t, "", a, b)
	if err != nil {
		t.Fatalf("Execute: unexpected error: %v", err)
	}
	want := testOutput + `{"x":{"type":"float","value":"1.5"}}` + "\n"
	if out != want {
		t.Errorf("Output: got %q, want %q", out, want)
	}

	_, _, err = runCmd(t, "", a, filepath.Join(dir, "nonesuch.toml"))
	if err == nil || !strings.Contains(err.Error(), "nonesuch.toml: ") {
		t.Errorf("Missing file: got %v, want an error naming the file", err)
	}
}

func TestFlags(t *testing.T) {
	t.Run("Path", func(t *testing.T) {
		out, _, err := runCmd(t, testInput, "--path", "server.port[-1]")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if want := `{"type":"integer","value":"443"}` + "\n"; out != want {
			t.Errorf("Output: got %q, want %q", out, want)
		}
	})
	t.Run("BadPath", func(t *testing.T) {
		if out, _, err := runCmd(t, testInput, "--path", "server.nonesuch"); err == nil {
			t.Errorf("Execute: got %q, want error", out)
		}
	})
	t.Run("Pretty", func(t *testing.T) {
		out, _, err := runCmd(t, testInput, "--pretty")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if !strings.HasSuffix(out, "}\n") || strings.Count(out, "\n") < 3 {
			t.Errorf("Output is not indented:\n%s", out)
		}
		if !json.Valid([]byte(out)) {
			t.Errorf("Output is not valid JSON:\n%s", out)
		}
	})
	t.Run("YAML", func(t *testing.T) {
		out, _, err := runCmd(t, testInput, "--yaml")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if !strings.HasPrefix(out, "server:\n") || !strings.Contains(out, "host: localhost\n") {
			t.Errorf("Output is not the expected YAML:\n%s", out)
		}
	})
	t.Run("PrettyYAML", func(t *testing.T) {
		if _, _, err := runCmd(t, testInput, "--pretty", "--yaml"); err == nil {
			t.Error("Execute: got no error for conflicting flags")
		}
	})
	t.Run("MaxBytes", func(t *testing.T) {
		_, _, err := runCmd(t, testInput, "--max-bytes", "16")
		if !errors.Is(err, ast.ErrOutOfMemory) {
			t.Errorf("Execute: got %v, want %v", err, ast.ErrOutOfMemory)
		}
	})
	t.Run("Verbose", func(t *testing.T) {
		out, logs, err := runCmd(t, testInput, "-v")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if out != testOutput {
			t.Errorf("Output: got %q, want %q", out, testOutput)
		}
		if !strings.Contains(logs, "read standard input") || !strings.Contains(logs, "projected document") {
			t.Errorf("Log output missing expected entries:\n%s", logs)
		}
	})
	t.Run("VerbosePath", func(t *testing.T) {
		_, logs, err := runCmd(t, testInput, "-v", "--path", "server.port[-1]")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		// The selected element is "443" on line 3.
		if !strings.Contains(logs, "selected node") || !strings.Contains(logs, "3:12") {
			t.Errorf("Log output missing node location:\n%s", logs)
		}
	})
	t.Run("Quiet", func(t *testing.T) {
		if _, logs, err := runCmd(t, testInput); err != nil || logs != "" {
			t.Errorf("Execute: got logs %q, error %v; want neither", logs, err)
		}
	})
}

func TestSyntaxError(t *testing.T) {
	out, _, err := runCmd(t, "a = ")
	if err == nil {
		t.Fatalf("Execute: got %q, want error", out)
	}
	if out != "" {
		t.Errorf("Output on error: got %q, want none", out)
	}

	var buf bytes.Buffer
	printError(&buf, err)
	if got, want := buf.String(), "ERROR: at 1:4: expected value, got end of input\n"; got != want {
		t.Errorf("printError: got %q, want %q", got, want)
	}
}

func TestEmit(t *testing.T) {
	doc, err := ast.Parse("a = 'x'\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := emit(&buf, doc, settings{}, zap.NewNop()); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got, want := buf.String(), `{"a":{"type":"string","value":"x"}}`+"\n"; got != want {
		t.Errorf("emit: got %q, want %q", got, want)
	}
}
