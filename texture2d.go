package texview

import (
	"github.com/gogpu/gputypes"
	"github.com/woozymasta/bcn"
)

// Texture2D is a view of the mip levels of a single face of a Storage.
// The zero value is an empty texture.
type Texture2D struct {
	storage *Storage
	view    View
	format  bcn.Format
}

// NewTexture2D allocates a texture with levels mip levels.
func NewTexture2D(levels int, format bcn.Format, dims Dimensions) (Texture2D, error) {
	s, err := NewStorage(1, 1, levels, format, dims)
	if err != nil {
		return Texture2D{}, err
	}

	return WrapTexture2D(s), nil
}

// NewTexture2DFullChain allocates a texture with a full mip chain.
func NewTexture2DFullChain(format bcn.Format, dims Dimensions) (Texture2D, error) {
	return NewTexture2D(MipLevels(dims), format, dims)
}

// WrapTexture2D attaches to every level of the first face of the first
// layer of s, in the storage format.
func WrapTexture2D(s *Storage) Texture2D {
	if s == nil {
		return Texture2D{}
	}

	return Texture2D{
		storage: s,
		view:    View{MaxLevel: s.Levels() - 1},
		format:  s.Format(),
	}
}

// WrapTexture2DView attaches to s through view, reading texels as format.
// The view must select exactly one layer and one face.
func WrapTexture2DView(s *Storage, format bcn.Format, view View) (Texture2D, error) {
	if err := checkWrap(s, format, view); err != nil {
		return Texture2D{}, err
	}
	if view.Layers() != 1 || view.Faces() != 1 {
		return Texture2D{}, violation(ErrViewOutOfRange, "2D view %s spans several images", view)
	}

	return Texture2D{storage: s, view: view, format: format}, nil
}

// Slice returns the levels baseLevel..maxLevel of t, relative to its own
// base level.
func (t Texture2D) Slice(baseLevel, maxLevel int) (Texture2D, error) {
	v, err := t.view.derive(0, 0, 0, 0, baseLevel, maxLevel)
	if err != nil {
		return Texture2D{}, err
	}

	return Texture2D{storage: t.storage, view: v, format: t.format}, nil
}

// WithFormat returns t reading the same bytes as format.
func (t Texture2D) WithFormat(format bcn.Format) Texture2D {
	t.format = format
	return t
}

// Empty reports whether the underlying storage is empty.
func (t Texture2D) Empty() bool { return t.storage.Empty() }

// Storage returns the shared storage handle.
func (t Texture2D) Storage() *Storage { return t.storage }

// Format returns the format texels are read as.
func (t Texture2D) Format() bcn.Format { return t.format }

// View returns the addressed range.
func (t Texture2D) View() View { return t.view }

// Layers is always 1.
func (t Texture2D) Layers() int { return 1 }

// Faces is always 1.
func (t Texture2D) Faces() int { return 1 }

// Levels returns the number of levels in the view.
func (t Texture2D) Levels() int { return t.view.Levels() }

// Dimensions returns the size of the base level of the view.
func (t Texture2D) Dimensions() Dimensions {
	if t.Empty() {
		return Dimensions{}
	}

	return t.storage.Dimensions(t.view.BaseLevel)
}

// Size returns the bytes of every level in the view.
func (t Texture2D) Size() (int, error) {
	if t.Empty() {
		return 0, violation(ErrEmptyTexture, "size")
	}

	return t.storage.FaceSize(t.view.BaseLevel, t.view.MaxLevel), nil
}

// Data returns the bytes of every level in the view, aliasing storage.
func (t Texture2D) Data() ([]byte, error) {
	if t.Empty() {
		return nil, violation(ErrEmptyTexture, "data")
	}

	return faceRegion(t.storage, t.view.BaseLayer, t.view.BaseFace, t.view), nil
}

// Level returns the bytes of level i of the view, aliasing storage.
func (t Texture2D) Level(i int) ([]byte, error) {
	if t.Empty() {
		return nil, violation(ErrEmptyTexture, "level")
	}
	if i < 0 || i >= t.Levels() {
		return nil, violation(ErrLevelOutOfRange, "level %d of %d", i, t.Levels())
	}

	level := t.view.BaseLevel + i
	begin := Offset(t.storage, t.view.BaseLayer, t.view.BaseFace, level)
	end := begin + t.storage.LevelSize(level)

	return t.storage.Data()[begin:end:end], nil
}

// Clear zeroes every level of the view.
func (t Texture2D) Clear() error {
	return t.fillBlocks(nil)
}

func (t Texture2D) fillBlocks(pattern []byte) error {
	data, err := t.Data()
	if err != nil {
		return err
	}
	fill(data, pattern)

	return nil
}

// Validate checks every invariant of t.
func (t Texture2D) Validate() error {
	if err := validateFacade(t.storage, t.view, t.format); err != nil {
		return err
	}
	if t.view.Layers() != 1 || t.view.Faces() != 1 {
		return violation(ErrViewOutOfRange, "2D view %s spans several images", t.view)
	}

	return nil
}

// Descriptor returns the GPU view descriptor matching t.
func (t Texture2D) Descriptor() gputypes.TextureViewDescriptor {
	return viewDescriptor(t.storage, t.view, t.format, gputypes.TextureViewDimension2D)
}
