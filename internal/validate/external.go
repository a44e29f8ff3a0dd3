package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/enermodel/h2khpxml/internal/ctxlog"
)

// External invokes an out-of-process schema validator against a serialized
// document on disk. The command receives the document path as its last
// argument and is expected to print one "location: message" finding per
// line; a non-zero exit with findings is a normal validation failure, a
// non-zero exit without findings is an invocation error.
type External struct {
	Command []string
}

// Run executes the external validator. A nil or empty command is a no-op.
func (e *External) Run(ctx context.Context, docPath string) ([]Finding, error) {
	if e == nil || len(e.Command) == 0 {
		return nil, nil
	}
	logger := ctxlog.FromContext(ctx)

	args := append(append([]string{}, e.Command[1:]...), docPath)
	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()
	findings := parseFindings(out.Bytes())
	logger.Debug("External validator finished.", "command", e.Command[0], "findings", len(findings))

	if runErr != nil && len(findings) == 0 {
		return nil, fmt.Errorf("external validator %s: %w", e.Command[0], runErr)
	}
	return findings, nil
}

func parseFindings(out []byte) []Finding {
	var findings []Finding
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		loc, msg, found := strings.Cut(line, ": ")
		if !found {
			loc, msg = "", line
		}
		findings = append(findings, Finding{Location: loc, Message: msg})
	}
	return findings
}
