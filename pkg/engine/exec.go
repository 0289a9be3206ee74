package engine

import (
	"bytes"
	"context"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/renderfig/renderfig/pkg/errors"
)

// stderrLimit caps how much of an engine's stderr ends up in an error
// message. Enough to diagnose a missing package or syntax error, not the
// whole LaTeX log.
const stderrLimit = 512

// run invokes an external engine binary with source on stdin and returns its
// stdout. A binary that exits cleanly but writes nothing is a failure.
func run(ctx context.Context, cfg Config, name string, args []string, stdin []byte) ([]byte, error) {
	out, err := execCommand(ctx, cfg, name, args, stdin, "")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeEngineFailed, "%s produced no output", name)
	}
	return out, nil
}

// execCommand runs an external engine binary and returns its stdout, which
// may be empty for tools that write their artifact to a file instead. All
// process-level failures are mapped to structured errors: missing binary,
// timeout, non-zero exit (with a stderr excerpt).
func execCommand(ctx context.Context, cfg Config, name string, args []string, stdin []byte, dir string) ([]byte, error) {
	path := cfg.Path
	if path == "" {
		path = name
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngineNotFound, err, "%s binary not found", name)
	}

	if cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, resolved, append(slices.Clone(args), cfg.ExtraArgs...)...)
	cmd.Dir = dir
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.New(errors.ErrCodeEngineTimeout,
				"%s timed out after %ds", name, cfg.TimeoutSeconds)
		}
		return nil, errors.Wrap(errors.ErrCodeEngineFailed, err,
			"%s failed: %s", name, excerpt(errBuf.String()))
	}
	return out.Bytes(), nil
}

// excerpt abbreviates engine stderr for error messages, keeping the tail
// where tools like pdflatex put the actual error.
func excerpt(stderr string) string {
	s := strings.TrimSpace(stderr)
	if s == "" {
		return "no error output"
	}
	if len(s) > stderrLimit {
		s = "..." + s[len(s)-stderrLimit:]
	}
	return s
}
