package runner_test

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cristianradulescu/beautify-ls/internal/runner"
)

func TestExecCommandRunner_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}

	r := runner.NewExecCommandRunner()

	t.Run("captures stdout", func(t *testing.T) {
		out, err := r.Execute(context.Background(), "sh", []string{"-c", "printf hello"}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "hello" {
			t.Errorf("output = %q; expected %q", out, "hello")
		}
	})

	t.Run("passes stdin through", func(t *testing.T) {
		out, err := r.Execute(context.Background(), "sh", []string{"-c", "cat"}, "piped content")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "piped content" {
			t.Errorf("output = %q; expected the stdin content", out)
		}
	})

	t.Run("reports failure with stderr", func(t *testing.T) {
		_, err := r.Execute(context.Background(), "sh", []string{"-c", "echo broken >&2; exit 3"}, "")
		if err == nil {
			t.Fatalf("expected an error for a failing command")
		}
		if !strings.Contains(err.Error(), "broken") {
			t.Errorf("error %q should include stderr output", err.Error())
		}
	})
}

func TestValidateBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}

	t.Run("binary found in PATH", func(t *testing.T) {
		if err := runner.ValidateBinary("sh"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("binary missing from PATH", func(t *testing.T) {
		if err := runner.ValidateBinary("definitely-not-a-real-beautifier"); err == nil {
			t.Errorf("expected an error for a missing binary")
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "formatter")
		if err := runner.ValidateBinary(missing); err == nil {
			t.Errorf("expected an error for a missing explicit path")
		}
	})
}
