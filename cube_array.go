package texview

import (
	"github.com/gogpu/gputypes"
	"github.com/woozymasta/bcn"
)

// CubeArray is a view of a range of cube maps stored as consecutive layers.
// The zero value is an empty array.
type CubeArray struct {
	storage *Storage
	view    View
	format  bcn.Format
}

// NewCubeArray allocates layers cubes of faces faces and levels levels.
func NewCubeArray(layers, faces, levels int, format bcn.Format, dims Dimensions) (CubeArray, error) {
	s, err := NewStorage(layers, faces, levels, format, dims)
	if err != nil {
		return CubeArray{}, err
	}

	return WrapCubeArray(s), nil
}

// WrapCubeArray attaches to the whole of s in the storage format.
func WrapCubeArray(s *Storage) CubeArray {
	if s == nil {
		return CubeArray{}
	}

	return CubeArray{storage: s, view: FullView(s), format: s.Format()}
}

// WrapCubeArrayView attaches to s through view, reading texels as format.
func WrapCubeArrayView(s *Storage, format bcn.Format, view View) (CubeArray, error) {
	if err := checkWrap(s, format, view); err != nil {
		return CubeArray{}, err
	}

	return CubeArray{storage: s, view: view, format: format}, nil
}

// Slice narrows a; every index is relative to a's own view.
func (a CubeArray) Slice(baseLayer, maxLayer, baseFace, maxFace, baseLevel, maxLevel int) (CubeArray, error) {
	v, err := a.view.derive(baseLayer, maxLayer, baseFace, maxFace, baseLevel, maxLevel)
	if err != nil {
		return CubeArray{}, err
	}

	return CubeArray{storage: a.storage, view: v, format: a.format}, nil
}

// Layer returns cube i of the array with all faces and levels of the view.
func (a CubeArray) Layer(i int) (Cube, error) {
	if a.Empty() {
		return Cube{}, violation(ErrEmptyTexture, "layer %d", i)
	}
	if i < 0 || i >= a.Layers() {
		return Cube{}, violation(ErrLayerOutOfRange, "layer %d of %d", i, a.Layers())
	}

	return CubeFromArrayLayer(a, i, 0, a.Faces()-1, 0, a.Levels()-1)
}

// WithFormat returns a reading the same bytes as format.
func (a CubeArray) WithFormat(format bcn.Format) CubeArray {
	a.format = format
	return a
}

// Empty reports whether the underlying storage is empty.
func (a CubeArray) Empty() bool { return a.storage.Empty() }

// Storage returns the shared storage handle.
func (a CubeArray) Storage() *Storage { return a.storage }

// Format returns the format texels are read as.
func (a CubeArray) Format() bcn.Format { return a.format }

// View returns the addressed range.
func (a CubeArray) View() View { return a.view }

// Layers returns the number of cubes in the view.
func (a CubeArray) Layers() int { return a.view.Layers() }

// Faces returns the number of faces per cube in the view.
func (a CubeArray) Faces() int { return a.view.Faces() }

// Levels returns the number of levels in the view.
func (a CubeArray) Levels() int { return a.view.Levels() }

// Dimensions returns the size of the base level of the view.
func (a CubeArray) Dimensions() Dimensions {
	if a.Empty() {
		return Dimensions{}
	}

	return a.storage.Dimensions(a.view.BaseLevel)
}

// Size returns the bytes addressed by the view over every layer.
func (a CubeArray) Size() (int, error) {
	if a.Empty() {
		return 0, violation(ErrEmptyTexture, "size")
	}
	perLayer := a.storage.LayerSize(a.view.BaseFace, a.view.MaxFace, a.view.BaseLevel, a.view.MaxLevel)

	return a.Layers() * perLayer, nil
}

// Data returns storage memory from the first addressed block to the last.
func (a CubeArray) Data() ([]byte, error) {
	if a.Empty() {
		return nil, violation(ErrEmptyTexture, "data")
	}

	return span(a.storage, a.view), nil
}

// Clear zeroes every addressed block of every cube.
func (a CubeArray) Clear() error {
	return a.fillBlocks(nil)
}

func (a CubeArray) fillBlocks(pattern []byte) error {
	if a.Empty() {
		return violation(ErrEmptyTexture, "clear")
	}
	for i := 0; i < a.Layers(); i++ {
		cube, err := a.Layer(i)
		if err != nil {
			return err
		}
		if err := cube.fillBlocks(pattern); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks every invariant of a.
func (a CubeArray) Validate() error {
	return validateFacade(a.storage, a.view, a.format)
}

// Descriptor returns the GPU view descriptor matching a. Arrays of cubes
// without six faces are described as 2D arrays.
func (a CubeArray) Descriptor() gputypes.TextureViewDescriptor {
	dim := gputypes.TextureViewDimensionCubeArray
	if a.Faces() != 6 {
		dim = gputypes.TextureViewDimension2DArray
	}

	return viewDescriptor(a.storage, a.view, a.format, dim)
}
