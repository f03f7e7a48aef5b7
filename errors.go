package texview

import "github.com/cockroachdb/errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidFormat indicates an unknown or unsupported texel format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidDimensions indicates non-positive texture dimensions.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidLayout indicates an invalid layer, face or level count.
	ErrInvalidLayout = errors.New("invalid storage layout")
	// ErrStorageSizeMismatch indicates a wrapped buffer does not match the layout.
	ErrStorageSizeMismatch = errors.New("storage size mismatch")

	// ErrEmptyTexture indicates access to a texture without storage.
	ErrEmptyTexture = errors.New("empty texture")
	// ErrViewOutOfRange indicates a view outside its storage or parent view.
	ErrViewOutOfRange = errors.New("view out of range")
	// ErrFaceOutOfRange indicates a face index outside the view.
	ErrFaceOutOfRange = errors.New("face out of range")
	// ErrLayerOutOfRange indicates a layer index outside the view.
	ErrLayerOutOfRange = errors.New("layer out of range")
	// ErrLevelOutOfRange indicates a mip level index outside the view.
	ErrLevelOutOfRange = errors.New("level out of range")
	// ErrTexelTooWide indicates a typed access wider than one texel block.
	ErrTexelTooWide = errors.New("texel type wider than block")
	// ErrTexelSizeMismatch indicates a typed clear with a size other than one block.
	ErrTexelSizeMismatch = errors.New("texel size does not match block")
	// ErrIncompatibleFormat indicates a reinterpreted format whose blocks do not fit the storage blocks.
	ErrIncompatibleFormat = errors.New("incompatible view format")
	// ErrNotSingleCube indicates a cube view spanning more than one layer.
	ErrNotSingleCube = errors.New("cube view spans several layers")
)

// violation reports a broken precondition. The result matches sentinel with
// errors.Is and is flagged as an assertion failure.
func violation(sentinel error, format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Wrapf(sentinel, format, args...))
}

// IsContractViolation reports whether err was caused by misuse of a texture
// façade rather than by invalid external input. Errors joined by
// fmt.Errorf with several %w verbs are searched branch by branch.
func IsContractViolation(err error) bool {
	for err != nil {
		if errors.HasAssertionFailure(err) {
			return true
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				if IsContractViolation(inner) {
					return true
				}
			}
			return false
		}
		err = errors.UnwrapOnce(err)
	}

	return false
}
