package voice

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExecRecognizer captures speech by running an external speech-to-text
// command that prints one final transcript to stdout. The capability
// check is a PATH probe, so a missing transcriber degrades to
// ErrUnavailable instead of a failed exec mid-session.
type ExecRecognizer struct {
	// Command is the transcriber executable name probed on PATH.
	Command string
}

// NewExecRecognizer creates a recognizer for the named executable.
func NewExecRecognizer(command string) *ExecRecognizer {
	return &ExecRecognizer{Command: command}
}

// Available reports whether the transcriber executable can be found.
func (r *ExecRecognizer) Available() bool {
	if r.Command == "" {
		return false
	}
	_, err := exec.LookPath(r.Command)
	return err == nil
}

// Listen runs one capture. The transcriber is invoked in single-shot
// mode for the given locale; its trimmed stdout is the final transcript.
func (r *ExecRecognizer) Listen(ctx context.Context, locale string) (string, error) {
	cmd := exec.CommandContext(ctx, r.Command, "--once", "--locale", locale)

	out, err := cmd.Output()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		return "", fmt.Errorf("running transcriber %s: %w", r.Command, err)
	}

	return strings.TrimSpace(string(out)), nil
}
