package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/renderfig/renderfig/pkg/errors"
)

func TestRunSuccess(t *testing.T) {
	out, err := run(context.Background(), Config{}, "sh", []string{"-c", "printf '<svg/>'"}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if string(out) != "<svg/>" {
		t.Errorf("out = %q", out)
	}
}

func TestRunStdin(t *testing.T) {
	out, err := run(context.Background(), Config{}, "sh", []string{"-c", "cat"}, []byte("digraph{A->B}"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if string(out) != "digraph{A->B}" {
		t.Errorf("stdin should be piped through, got %q", out)
	}
}

func TestRunMissingBinary(t *testing.T) {
	_, err := run(context.Background(), Config{}, "renderfig-no-such-binary", nil, nil)
	if !errors.Is(err, errors.ErrCodeEngineNotFound) {
		t.Errorf("want ENGINE_NOT_FOUND, got %v", err)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	_, err := run(context.Background(), Config{}, "sh", []string{"-c", "echo boom >&2; exit 3"}, nil)
	if !errors.Is(err, errors.ErrCodeEngineFailed) {
		t.Fatalf("want ENGINE_FAILED, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should carry the stderr excerpt: %v", err)
	}
}

func TestRunEmptyOutput(t *testing.T) {
	_, err := run(context.Background(), Config{}, "sh", []string{"-c", "true"}, nil)
	if !errors.Is(err, errors.ErrCodeEngineFailed) {
		t.Errorf("clean exit with no output should be ENGINE_FAILED, got %v", err)
	}
}

func TestRunTimeout(t *testing.T) {
	cfg := Config{TimeoutSeconds: 1}
	_, err := run(context.Background(), cfg, "sh", []string{"-c", "sleep 10"}, nil)
	if !errors.Is(err, errors.ErrCodeEngineTimeout) {
		t.Errorf("want ENGINE_TIMEOUT, got %v", err)
	}
}

func TestRunPathOverride(t *testing.T) {
	cfg := Config{Path: "sh"}
	out, err := run(context.Background(), cfg, "not-the-real-name", []string{"-c", "printf ok"}, nil)
	if err != nil {
		t.Fatalf("run with path override: %v", err)
	}
	if string(out) != "ok" {
		t.Errorf("out = %q", out)
	}
}

func TestRunExtraArgs(t *testing.T) {
	cfg := Config{ExtraArgs: []string{"trailing"}}
	out, err := run(context.Background(), cfg, "sh", []string{"-c", `printf '%s' "$0"`, "trailing-sentinel"}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// sh -c 'printf %s $0' trailing-sentinel: $0 becomes trailing-sentinel
	if string(out) != "trailing-sentinel" {
		t.Errorf("out = %q", out)
	}
}

func TestExcerpt(t *testing.T) {
	if got := excerpt(""); got != "no error output" {
		t.Errorf("excerpt of empty stderr = %q", got)
	}

	long := strings.Repeat("x", 2000) + "tail"
	got := excerpt(long)
	if len(got) > stderrLimit+10 {
		t.Errorf("excerpt too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "tail") {
		t.Error("excerpt should keep the tail of stderr")
	}
}
