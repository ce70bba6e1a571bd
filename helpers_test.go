package lore

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unknwon/com"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func capture() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// sampleSite copies testdata/site into a fresh directory.
func sampleSite(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "site")
	require.NoError(t, com.CopyDir(filepath.Join("testdata", "site"), dir))
	return dir
}

func renderer(t *testing.T, root string) *DefaultRenderer {
	t.Helper()
	r := NewDefaultRenderer(quiet())
	require.NoError(t, r.Before(root))
	return r
}
