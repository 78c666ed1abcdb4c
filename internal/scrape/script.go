package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"trailerdl/pkg/logger"
)

// ScriptRunner runs an external scrape command and returns its JSON
// output verbatim. It backs the raw /api/scrape endpoint, which dumps
// whatever the collaborator script prints.
type ScriptRunner struct {
	command string
	logger  logger.Logger
}

// NewScriptRunner creates a runner for the configured command line.
func NewScriptRunner(command string, log logger.Logger) *ScriptRunner {
	if log == nil {
		log = logger.GetLogger()
	}
	return &ScriptRunner{command: command, logger: log}
}

// Run executes the scrape command and validates that it produced JSON.
func (r *ScriptRunner) Run(ctx context.Context) (json.RawMessage, error) {
	if r.command == "" {
		return nil, errors.New("no scrape command configured")
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", r.command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.logger.ErrorWithFields("scrape command failed", map[string]interface{}{
			"command": r.command,
			"error":   err.Error(),
			"stderr":  stderr.String(),
		})
		return nil, fmt.Errorf("scrape command failed: %w", err)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if !json.Valid(out) {
		return nil, errors.New("scrape command produced invalid JSON")
	}

	return json.RawMessage(out), nil
}
