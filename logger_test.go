package texview

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/woozymasta/bcn"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	if _, err := NewStorage(1, 6, 1, bcn.FormatRGBA8, Dimensions{2, 2}); err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	if !strings.Contains(buf.String(), "storage allocated") || !strings.Contains(buf.String(), "bytes=96") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	if _, err := NewStorage(1, 1, 1, bcn.FormatRGBA8, Dimensions{2, 2}); err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nil logger must be silent, got %q", buf.String())
	}
	if Logger() == nil {
		t.Fatalf("Logger() returned nil")
	}
}
