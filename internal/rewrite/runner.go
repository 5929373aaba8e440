// Package rewrite smooths answer phrasing through an external text
// rewrite process. Every failure mode degrades to the original text.
package rewrite

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner invokes the external rewrite process with a prompt and
// returns its output text. A non-zero exit or a missing binary is an
// error; the caller decides what failure means.
type Runner interface {
	Rewrite(ctx context.Context, prompt string) (string, error)
}

// CommandRunner shells out to a local model CLI (ollama by default),
// feeding the prompt on stdin and reading the completion from stdout.
type CommandRunner struct {
	Binary string
	Model  string
}

func NewCommandRunner(binary, model string) *CommandRunner {
	if binary == "" {
		binary = "ollama"
	}
	return &CommandRunner{Binary: binary, Model: model}
}

func (r *CommandRunner) Rewrite(ctx context.Context, prompt string) (string, error) {
	args := []string{"run"}
	if r.Model != "" {
		args = append(args, r.Model)
	}
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", r.Binary, err)
	}
	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", fmt.Errorf("%s: empty completion", r.Binary)
	}
	return out, nil
}
