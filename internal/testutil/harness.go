// Package testutil provides the shared conversion-test harness: temp-dir
// fixture writing, a thread-safe log buffer, and a standardized way to run
// one conversion end to end.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/enermodel/h2khpxml/internal/convert"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/processor"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// FixedTime is the injected clock value; golden output depends on it.
var FixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// WriteFile writes one fixture file under dir, creating parents.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Options returns conversion options wired for tests: default registry,
// fixed clock, output under outDir.
func Options(outDir string) convert.Options {
	return convert.Options{
		OutputDir:        outDir,
		GeneratorName:    "h2khpxml",
		GeneratorVersion: "test",
		Now:              func() time.Time { return FixedTime },
		Registry:         processor.Default(),
	}
}

// RunConversion writes the source document to a temp dir, converts it with
// the default registry, and returns the result plus captured debug logs.
func RunConversion(t *testing.T, sourceXML string) (convert.Result, string) {
	t.Helper()
	dir := t.TempDir()
	input := WriteFile(t, dir, "house.h2k", sourceXML)

	logBuf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	res := convert.Convert(ctx, input, Options(filepath.Join(dir, "out")))
	return res, logBuf.String()
}
