package texview

import (
	"fmt"
	"math/bits"
)

// Dimensions is the texel size of one image. Depth is always 1.
type Dimensions struct {
	Width  int
	Height int
}

// String returns the dimensions as WxH.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// MipDimensions returns the size of mip level of an image of size d.
func MipDimensions(d Dimensions, level int) Dimensions {
	return Dimensions{
		Width:  mipDimension(d.Width, level),
		Height: mipDimension(d.Height, level),
	}
}

// MipLevels returns the length of a full mip chain down to 1x1:
// floor(log2(max(width, height))) + 1.
func MipLevels(d Dimensions) int {
	m := max(d.Width, d.Height)
	if m < 1 {
		return 0
	}

	return bits.Len(uint(m))
}

// mipDimension calculates the dimension of a mipmap level.
func mipDimension(base, level int) int {
	result := base >> level
	if result < 1 {
		return 1
	}

	return result
}
