package texview

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/woozymasta/bcn"
)

// Storage owns one contiguous texel buffer laid out layer -> face -> level.
//
// A *Storage is shared by every texture façade attached to it. Writes made
// through any façade are visible through every other façade whose view
// overlaps the written bytes. Storage performs no synchronization.
type Storage struct {
	data []byte

	layers int
	faces  int
	levels int
	format bcn.Format
	dims   Dimensions

	// levelOffsets[i] is the byte offset of level i inside one face;
	// levelOffsets[levels] is the face size.
	levelOffsets []int
	layerBytes   int
}

// NewStorage allocates zeroed storage for layers x faces x levels images of
// format, level 0 being dims.
func NewStorage(layers, faces, levels int, format bcn.Format, dims Dimensions) (*Storage, error) {
	s, err := newLayout(layers, faces, levels, format, dims)
	if err != nil {
		return nil, err
	}

	total, err := mulChecked(s.layers, s.layerBytes)
	if err != nil {
		return nil, err
	}
	s.data = make([]byte, total)

	Logger().Debug("texview: storage allocated",
		slog.Int("layers", layers),
		slog.Int("faces", faces),
		slog.Int("levels", levels),
		slog.Any("format", format),
		slog.String("dims", dims.String()),
		slog.Int("bytes", total))

	return s, nil
}

// WrapStorage attaches storage to an existing buffer without copying it.
// The buffer length must match the layout exactly.
func WrapStorage(layers, faces, levels int, format bcn.Format, dims Dimensions, data []byte) (*Storage, error) {
	s, err := newLayout(layers, faces, levels, format, dims)
	if err != nil {
		return nil, err
	}

	total, err := mulChecked(s.layers, s.layerBytes)
	if err != nil {
		return nil, err
	}
	if len(data) != total {
		return nil, errors.Wrapf(ErrStorageSizeMismatch, "expected %d, got %d", total, len(data))
	}
	s.data = data[:total:total]

	Logger().Debug("texview: storage wrapped",
		slog.Int("layers", layers),
		slog.Int("faces", faces),
		slog.Int("levels", levels),
		slog.Any("format", format),
		slog.Int("bytes", total))

	return s, nil
}

func newLayout(layers, faces, levels int, format bcn.Format, dims Dimensions) (*Storage, error) {
	if BlockSize(format) == 0 {
		return nil, errors.Wrapf(ErrInvalidFormat, "%v", format)
	}
	if dims.Width < 1 || dims.Height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%s", dims)
	}
	if layers < 1 || faces < 1 || levels < 1 {
		return nil, errors.Wrapf(ErrInvalidLayout, "layers=%d faces=%d levels=%d", layers, faces, levels)
	}
	if chain := MipLevels(dims); levels > chain {
		return nil, errors.Wrapf(ErrInvalidLayout, "%d levels exceed the %d level chain of %s", levels, chain, dims)
	}

	offsets := make([]int, levels+1)
	for level := 0; level < levels; level++ {
		offsets[level+1] = offsets[level] + LevelSize(format, MipDimensions(dims, level))
	}

	layerBytes, err := mulChecked(faces, offsets[levels])
	if err != nil {
		return nil, err
	}

	return &Storage{
		layers:       layers,
		faces:        faces,
		levels:       levels,
		format:       format,
		dims:         dims,
		levelOffsets: offsets,
		layerBytes:   layerBytes,
	}, nil
}

// Empty reports whether the storage holds no texel data. A nil storage is empty.
func (s *Storage) Empty() bool {
	return s == nil || len(s.data) == 0
}

// Data returns the whole texel buffer.
func (s *Storage) Data() []byte { return s.data }

// Layers returns the number of array layers.
func (s *Storage) Layers() int { return s.layers }

// Faces returns the number of faces per layer.
func (s *Storage) Faces() int { return s.faces }

// Levels returns the number of mip levels per face.
func (s *Storage) Levels() int { return s.levels }

// Format returns the native texel format.
func (s *Storage) Format() bcn.Format { return s.format }

// BlockSize returns the byte size of one native texel block.
func (s *Storage) BlockSize() int { return BlockSize(s.format) }

// Dimensions returns the size of mip level.
func (s *Storage) Dimensions(level int) Dimensions {
	return MipDimensions(s.dims, level)
}

// LevelSize returns the byte size of one image at level.
func (s *Storage) LevelSize(level int) int {
	return s.levelOffsets[level+1] - s.levelOffsets[level]
}

// FaceSize returns the bytes of levels baseLevel..maxLevel of a single face.
func (s *Storage) FaceSize(baseLevel, maxLevel int) int {
	return s.levelOffsets[maxLevel+1] - s.levelOffsets[baseLevel]
}

// LayerSize returns the bytes of faces baseFace..maxFace restricted to
// levels baseLevel..maxLevel, summed over exactly that sub-range.
func (s *Storage) LayerSize(baseFace, maxFace, baseLevel, maxLevel int) int {
	return (maxFace - baseFace + 1) * s.FaceSize(baseLevel, maxLevel)
}

// Size returns the total byte size of the buffer.
func (s *Storage) Size() int { return len(s.data) }

// TextureDescriptor describes a GPU texture able to hold the whole storage.
// Faces and layers are flattened into array layers.
func (s *Storage) TextureDescriptor(label string) gputypes.TextureDescriptor {
	// #nosec G115 -- layout values are validated positive at construction.
	return gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              uint32(s.dims.Width),
			Height:             uint32(s.dims.Height),
			DepthOrArrayLayers: uint32(s.layers * s.faces),
		},
		MipLevelCount: uint32(s.levels),
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        GPUFormat(s.format),
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}
