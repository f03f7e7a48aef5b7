package commands

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFacePNG(t *testing.T, path string, shade uint8) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: shade, G: uint8(x * 20), B: uint8(y * 20), A: 255}) //nolint:gosec // bounded
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return out.String(), err
}

func TestCubeInfoExtract(t *testing.T) {
	dir := t.TempDir()
	args := []string{"cube", filepath.Join(dir, "sky.edds"), "--format", "bgra8", "--no-compress=false"}
	for i := 0; i < 6; i++ {
		path := filepath.Join(dir, "face"+string(rune('0'+i))+".png")
		writeFacePNG(t, path, uint8(i*40)) //nolint:gosec // bounded
		args = append(args, path)
	}

	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("cube: %v\n%s", err, out)
	}
	if !strings.Contains(out, "6 faces, 4 levels") {
		t.Fatalf("unexpected cube output: %q", out)
	}

	out, err = run(t, "info", filepath.Join(dir, "sky.edds"))
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"faces:      6", "levels:     4", "layers:     1", "dimensions: 8x8"} {
		if !strings.Contains(out, want) {
			t.Fatalf("info output missing %q:\n%s", want, out)
		}
	}

	png1 := filepath.Join(dir, "face2_level1.png")
	out, err = run(t, "extract", filepath.Join(dir, "sky.edds"),
		"--layer", "0", "--face", "2", "--level", "1", "-o", png1)
	if err != nil {
		t.Fatalf("extract: %v\n%s", err, out)
	}

	f, err := os.Open(png1)
	if err != nil {
		t.Fatalf("open extracted: %v", err)
	}
	defer func() { _ = f.Close() }()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 4 {
		t.Fatalf("extracted %dx%d, want 4x4", cfg.Width, cfg.Height)
	}

	if _, err := run(t, "extract", filepath.Join(dir, "sky.edds"),
		"--layer", "0", "--face", "6", "--level", "0", "-o", png1); err == nil {
		t.Fatalf("expected error for face 6")
	}
}

func TestCubeUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	face := filepath.Join(dir, "face.png")
	writeFacePNG(t, face, 10)

	_, err := run(t, "cube", filepath.Join(dir, "out.edds"), face, "--format", "etc2", "--no-compress=false")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "dxt1"},
		{name: "DXT5"},
		{name: "bgra8"},
		{name: "bc7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFormat(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}
