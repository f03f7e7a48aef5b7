package texview

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/woozymasta/bcn"
)

// Texture is implemented by every façade over a Storage: Texture2D, Cube
// and CubeArray.
type Texture interface {
	Empty() bool
	Format() bcn.Format
	View() View
	Storage() *Storage
	Size() (int, error)
	Data() ([]byte, error)

	// fillBlocks repeats pattern over every addressed block, or zeroes
	// them when pattern is empty.
	fillBlocks(pattern []byte) error
}

var (
	_ Texture = Texture2D{}
	_ Texture = Cube{}
	_ Texture = CubeArray{}
)

// SizeOf returns the number of T values in the bytes addressed by t.
// T must not be wider than one native texel block.
func SizeOf[T any](t Texture) (int, error) {
	n, err := texelWidth[T](t)
	if err != nil {
		return 0, err
	}
	size, err := t.Size()
	if err != nil {
		return 0, err
	}

	return size / n, nil
}

// DataOf returns the bytes of t reinterpreted as T values without copying.
// T must not be wider than one native texel block and must not contain
// pointers. The slice covers the contiguous span of Data: when a view over
// several faces or layers skips levels, the span includes those skipped
// levels and len(DataOf) exceeds SizeOf.
func DataOf[T any](t Texture) ([]T, error) {
	n, err := texelWidth[T](t)
	if err != nil {
		return nil, err
	}
	b, err := t.Data()
	if err != nil {
		return nil, err
	}
	if len(b) < n {
		return []T{}, nil
	}

	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/n), nil
}

// ClearTexel writes texel into every block addressed by t. The size of T
// must equal the native block size exactly; partial-block writes are
// rejected.
func ClearTexel[T any](t Texture, texel T) error {
	if t.Empty() {
		return violation(ErrEmptyTexture, "clear")
	}
	s := t.Storage()
	if !IsCompatible(s.Format(), t.Format()) {
		return violation(ErrIncompatibleFormat, "%v over %v storage", t.Format(), s.Format())
	}
	n := int(unsafe.Sizeof(texel))
	if n != s.BlockSize() {
		return violation(ErrTexelSizeMismatch, "%d bytes, block is %d", n, s.BlockSize())
	}

	pattern := make([]byte, n)
	copy(pattern, unsafe.Slice((*byte)(unsafe.Pointer(&texel)), n))

	return t.fillBlocks(pattern)
}

// texelWidth validates a typed read of T over t and returns sizeof(T).
func texelWidth[T any](t Texture) (int, error) {
	if t.Empty() {
		return 0, violation(ErrEmptyTexture, "typed access")
	}
	s := t.Storage()
	if !IsCompatible(s.Format(), t.Format()) {
		return 0, violation(ErrIncompatibleFormat, "%v over %v storage", t.Format(), s.Format())
	}

	var zero T
	n := int(unsafe.Sizeof(zero))
	if n == 0 {
		return 0, violation(ErrTexelSizeMismatch, "zero-sized texel type")
	}
	if n > s.BlockSize() {
		return 0, violation(ErrTexelTooWide, "%d bytes, block is %d", n, s.BlockSize())
	}

	return n, nil
}

// validateFacade checks the invariants shared by every façade.
func validateFacade(s *Storage, v View, format bcn.Format) error {
	if err := v.Validate(s); err != nil {
		return err
	}
	if !IsCompatible(s.Format(), format) {
		return violation(ErrIncompatibleFormat, "%v over %v storage", format, s.Format())
	}

	return nil
}

// checkWrap validates untrusted arguments of the Wrap*View factories.
func checkWrap(s *Storage, format bcn.Format, v View) error {
	if BlockSize(format) == 0 {
		return errors.Wrapf(ErrInvalidFormat, "%v", format)
	}

	return v.Validate(s)
}

func viewDescriptor(s *Storage, v View, format bcn.Format, dim gputypes.TextureViewDimension) gputypes.TextureViewDescriptor {
	if s == nil {
		return gputypes.TextureViewDescriptor{}
	}

	// #nosec G115 -- views are validated non-negative at construction.
	return gputypes.TextureViewDescriptor{
		Format:          GPUFormat(format),
		Dimension:       dim,
		Aspect:          gputypes.TextureAspectAll,
		BaseMipLevel:    uint32(v.BaseLevel),
		MipLevelCount:   uint32(v.Levels()),
		BaseArrayLayer:  uint32(v.BaseLayer*s.Faces() + v.BaseFace),
		ArrayLayerCount: uint32(v.Layers() * v.Faces()),
	}
}
