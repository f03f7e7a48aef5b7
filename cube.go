package texview

import (
	"github.com/gogpu/gputypes"
	"github.com/woozymasta/bcn"
)

// Cube is a view of one cube map: a range of faces, each with a range of
// mip levels, inside a single layer of a Storage.
//
// Cube never owns texel memory beyond the storage it was created with.
// Every derived cube, face or reinterpreted view shares that storage and
// sees writes made through any of them. The zero value is an empty cube.
type Cube struct {
	storage *Storage
	view    View
	format  bcn.Format
}

// NewCube allocates a single-layer cube with faces faces and levels levels.
// The view covers everything that was allocated.
func NewCube(faces, levels int, format bcn.Format, dims Dimensions) (Cube, error) {
	s, err := NewStorage(1, faces, levels, format, dims)
	if err != nil {
		return Cube{}, err
	}

	return WrapCube(s), nil
}

// NewCubeFullChain allocates a cube with the full mip chain of dims,
// MipLevels(dims) levels.
func NewCubeFullChain(faces int, format bcn.Format, dims Dimensions) (Cube, error) {
	return NewCube(faces, MipLevels(dims), format, dims)
}

// WrapCube attaches to layer 0 of s with every face and level in the
// storage format. Other layers are reached through WrapCubeArray.
func WrapCube(s *Storage) Cube {
	if s == nil {
		return Cube{}
	}

	view := FullView(s)
	view.MaxLayer = view.BaseLayer

	return Cube{storage: s, view: view, format: s.Format()}
}

// WrapCubeView attaches to s through view, reading texels as format.
// The view must lie inside s and select a single layer.
func WrapCubeView(s *Storage, format bcn.Format, view View) (Cube, error) {
	if err := checkWrap(s, format, view); err != nil {
		return Cube{}, err
	}
	if view.Layers() != 1 {
		return Cube{}, violation(ErrNotSingleCube, "%s", view)
	}

	return Cube{storage: s, view: view, format: format}, nil
}

// Slice narrows c to faces baseFace..maxFace and levels baseLevel..maxLevel.
// Indices are relative to c's own view, so slicing a slice narrows further
// and never leaves the original range.
func (c Cube) Slice(baseFace, maxFace, baseLevel, maxLevel int) (Cube, error) {
	v, err := c.view.derive(0, c.view.Layers()-1, baseFace, maxFace, baseLevel, maxLevel)
	if err != nil {
		return Cube{}, err
	}

	return Cube{storage: c.storage, view: v, format: c.format}, nil
}

// CubeFromArrayLayer selects the cube at layer of a, narrowed to faces
// baseFace..maxFace and levels baseLevel..maxLevel. All indices are
// relative to a's view.
func CubeFromArrayLayer(a CubeArray, layer, baseFace, maxFace, baseLevel, maxLevel int) (Cube, error) {
	v, err := a.view.derive(layer, layer, baseFace, maxFace, baseLevel, maxLevel)
	if err != nil {
		return Cube{}, err
	}

	return Cube{storage: a.storage, view: v, format: a.format}, nil
}

// CubeFromTexture2D views levels baseLevel..maxLevel of t as a one-face
// cube. Levels are relative to t's view; layer and face are kept.
func CubeFromTexture2D(t Texture2D, baseLevel, maxLevel int) (Cube, error) {
	v, err := t.view.derive(0, 0, 0, 0, baseLevel, maxLevel)
	if err != nil {
		return Cube{}, err
	}

	return Cube{storage: t.storage, view: v, format: t.format}, nil
}

// WithFormat returns c reading the same bytes as format. Typed accessors
// check that format fits the storage blocks.
func (c Cube) WithFormat(format bcn.Format) Cube {
	c.format = format
	return c
}

// Empty reports whether the underlying storage is empty. The view plays
// no part.
func (c Cube) Empty() bool { return c.storage.Empty() }

// Storage returns the shared storage handle. No texel data is copied.
func (c Cube) Storage() *Storage { return c.storage }

// Format returns the format texels are read as.
func (c Cube) Format() bcn.Format { return c.format }

// View returns the addressed range.
func (c Cube) View() View { return c.view }

// Layers is always 1.
func (c Cube) Layers() int { return 1 }

// Faces returns the number of faces in the view.
func (c Cube) Faces() int { return c.view.Faces() }

// Levels returns the number of levels in the view.
func (c Cube) Levels() int { return c.view.Levels() }

// Dimensions returns the size of the base level of the view, not of
// storage level 0.
func (c Cube) Dimensions() Dimensions {
	if c.Empty() {
		return Dimensions{}
	}

	return c.storage.Dimensions(c.view.BaseLevel)
}

// Size returns the bytes addressed by the view over all its faces and
// levels.
func (c Cube) Size() (int, error) {
	if c.Empty() {
		return 0, violation(ErrEmptyTexture, "size")
	}

	return c.storage.LayerSize(c.view.BaseFace, c.view.MaxFace, c.view.BaseLevel, c.view.MaxLevel), nil
}

// Data returns storage memory from the first addressed block, at
// (BaseLayer, BaseFace, BaseLevel), to the last one. When the view skips
// levels of a face, the slice also crosses the skipped bytes between faces;
// use Face and Texture2D.Level for exact regions.
func (c Cube) Data() ([]byte, error) {
	if c.Empty() {
		return nil, violation(ErrEmptyTexture, "data")
	}

	return span(c.storage, c.view), nil
}

// Face returns a 2D texture aliasing face i of c across all levels of the
// view.
func (c Cube) Face(i int) (Texture2D, error) {
	if c.Empty() {
		return Texture2D{}, violation(ErrEmptyTexture, "face %d", i)
	}
	if i < 0 || i >= c.Faces() {
		return Texture2D{}, violation(ErrFaceOutOfRange, "face %d of %d", i, c.Faces())
	}

	v := c.view
	v.BaseFace += i
	v.MaxFace = v.BaseFace

	return Texture2D{storage: c.storage, view: v, format: c.format}, nil
}

// Clear zeroes every level of every face in the view.
func (c Cube) Clear() error {
	return c.fillBlocks(nil)
}

func (c Cube) fillBlocks(pattern []byte) error {
	if c.Empty() {
		return violation(ErrEmptyTexture, "clear")
	}
	for i := 0; i < c.Faces(); i++ {
		face, err := c.Face(i)
		if err != nil {
			return err
		}
		if err := face.fillBlocks(pattern); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks every invariant of c.
func (c Cube) Validate() error {
	if err := validateFacade(c.storage, c.view, c.format); err != nil {
		return err
	}
	if c.view.Layers() != 1 {
		return violation(ErrNotSingleCube, "%s", c.view)
	}

	return nil
}

// Descriptor returns the GPU view descriptor matching c. Views without
// exactly six faces are described as 2D arrays.
func (c Cube) Descriptor() gputypes.TextureViewDescriptor {
	dim := gputypes.TextureViewDimensionCube
	if c.Faces() != 6 {
		dim = gputypes.TextureViewDimension2DArray
	}

	return viewDescriptor(c.storage, c.view, c.format, dim)
}
