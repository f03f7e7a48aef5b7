package edds

import (
	"fmt"
	"image"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/texview"
)

// ReadOptions configures decoding of level images.
type ReadOptions struct {
	// DecodeOptions are passed to the BCn decoder (e.g. Workers).
	DecodeOptions *bcn.DecodeOptions
}

// FillFace encodes img and its mip chain in the format of face and writes
// every level of the view in place. img must match the face dimensions.
func FillFace(face texview.Texture2D, img image.Image, opts *bcn.EncodeOptions) error {
	if err := face.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrTextureAccess, err)
	}

	dims := face.Dimensions()
	bounds := img.Bounds()
	if bounds.Dx() != dims.Width || bounds.Dy() != dims.Height {
		return fmt.Errorf("%w: image %dx%d, face %s", ErrImageSizeMismatch, bounds.Dx(), bounds.Dy(), dims)
	}

	mips := bcn.GenerateMipmaps(img, false)
	if len(mips) < face.Levels() {
		return fmt.Errorf("%w: have %d, need %d", ErrMipmapCount, len(mips), face.Levels())
	}

	for i := 0; i < face.Levels(); i++ {
		dst, err := face.Level(i)
		if err != nil {
			return fmt.Errorf("%w: level %d: %w", ErrTextureAccess, i, err)
		}

		data, _, _, err := bcn.EncodeImageWithOptions(mips[i], face.Format(), opts)
		if err != nil {
			return fmt.Errorf("%w: level %d: %v", ErrEncodeImage, i, err)
		}
		if len(data) != len(dst) {
			return fmt.Errorf("%w: level %d: expected %d, got %d", ErrMipmapSizeMismatch, i, len(dst), len(data))
		}

		copy(dst, data)
	}

	return nil
}

// DecodeLevel decodes level of face into an image.
func DecodeLevel(face texview.Texture2D, level int, opts *ReadOptions) (image.Image, error) {
	data, err := face.Level(level)
	if err != nil {
		return nil, fmt.Errorf("%w: level %d: %w", ErrTextureAccess, level, err)
	}

	dims := texview.MipDimensions(face.Dimensions(), level)
	decOpts := (*bcn.DecodeOptions)(nil)
	if opts != nil {
		decOpts = opts.DecodeOptions
	}

	img, err := bcn.DecodeImageWithOptions(data, dims.Width, dims.Height, face.Format(), decOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return img, nil
}

// CubeFromImages builds a cube with a full mip chain from one image per
// face. All images must share the size of the first one.
func CubeFromImages(faces []image.Image, format bcn.Format, opts *WriteOptions) (texview.Cube, error) {
	if len(faces) == 0 {
		return texview.Cube{}, fmt.Errorf("%w: no faces", ErrInvalidLayout)
	}

	bounds := faces[0].Bounds()
	dims := texview.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}
	cube, err := texview.NewCubeFullChain(len(faces), format, dims)
	if err != nil {
		return texview.Cube{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	var encOpts *bcn.EncodeOptions
	if opts != nil {
		encOpts = opts.EncodeOptions
	}

	for i, img := range faces {
		face, err := cube.Face(i)
		if err != nil {
			return texview.Cube{}, fmt.Errorf("%w: face %d: %w", ErrTextureAccess, i, err)
		}
		if err := FillFace(face, img, encOpts); err != nil {
			return texview.Cube{}, fmt.Errorf("face %d: %w", i, err)
		}
	}

	return cube, nil
}
