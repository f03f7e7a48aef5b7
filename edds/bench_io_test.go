package edds

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/texview"
)

// benchImage builds a deterministic image used by IO benchmarks.
func benchImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Deterministic pattern with mixed low/high frequencies.
			img.Set(x, y, color.NRGBA{
				R: uint8((x*7 + y*3) & 0xff),        //nolint:gosec // bounded by mask
				G: uint8((x*13 + y*5) & 0xff),       //nolint:gosec // bounded by mask
				B: uint8((x ^ y ^ (x >> 2)) & 0xff), //nolint:gosec // bounded by mask
				A: 255,
			})
		}
	}
	return img
}

// benchCube encodes six faces of a deterministic image into a cube.
func benchCube(b *testing.B, size int, format bcn.Format) texview.Cube {
	b.Helper()

	img := benchImage(size, size)
	faces := []image.Image{img, img, img, img, img, img}
	cube, err := CubeFromImages(faces, format, &WriteOptions{
		EncodeOptions: &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast},
	})
	if err != nil {
		b.Fatalf("prepare cube: %v", err)
	}

	return cube
}

func BenchmarkFillFaceDXT5(b *testing.B) {
	img := benchImage(512, 512)
	face, err := texview.NewTexture2DFullChain(bcn.FormatDXT5, texview.Dimensions{Width: 512, Height: 512})
	if err != nil {
		b.Fatalf("NewTexture2DFullChain: %v", err)
	}
	opts := &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast}

	b.ReportAllocs()
	b.SetBytes(int64(len(img.Pix)))
	b.ResetTimer()

	for b.Loop() {
		if err := FillFace(face, img, opts); err != nil {
			b.Fatalf("fill: %v", err)
		}
	}
}

func BenchmarkEncodeCube(b *testing.B) {
	cube := benchCube(b, 512, bcn.FormatDXT5)
	s := cube.Storage()

	for _, compress := range []bool{false, true} {
		name := "COPY"
		if compress {
			name = "LZ4"
		}
		opts := &WriteOptions{Compress: compress}

		b.Run(name, func(b *testing.B) {
			var buf bytes.Buffer
			b.ReportAllocs()
			b.SetBytes(int64(s.Size()))
			b.ResetTimer()

			for b.Loop() {
				buf.Reset()
				if err := Encode(&buf, s, opts); err != nil {
					b.Fatalf("encode (%s): %v", name, err)
				}
			}
		})
	}
}

func BenchmarkReadFileCube(b *testing.B) {
	cube := benchCube(b, 512, bcn.FormatDXT5)
	path := filepath.Join(b.TempDir(), "cube_read.edds")
	if err := WriteFile(path, cube.Storage(), nil); err != nil {
		b.Fatalf("prepare input file: %v", err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(cube.Storage().Size()))
	b.ResetTimer()

	for b.Loop() {
		if _, err := ReadFile(path); err != nil {
			b.Fatalf("read: %v", err)
		}
	}
}

func BenchmarkDecodeLevelBGRA8(b *testing.B) {
	cube := benchCube(b, 512, bcn.FormatBGRA8)
	face, err := cube.Face(0)
	if err != nil {
		b.Fatalf("Face: %v", err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(face.Storage().LevelSize(0)))
	b.ResetTimer()

	for b.Loop() {
		if _, err := DecodeLevel(face, 0, nil); err != nil {
			b.Fatalf("decode: %v", err)
		}
	}
}
