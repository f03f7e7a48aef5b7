package texview

import (
	"github.com/gogpu/gputypes"
	"github.com/woozymasta/bcn"
)

// BlockSize returns the number of bytes in one texel block of format,
// or 0 for an unknown format.
func BlockSize(format bcn.Format) int {
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return 4
	default:
		return 0
	}
}

// BlockExtent returns the texel footprint of one block of format.
func BlockExtent(format bcn.Format) (int, int) {
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4, bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return 4, 4
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return 1, 1
	default:
		return 0, 0
	}
}

// LevelSize returns the block-rounded byte size of one image of dims,
// or -1 for an unknown format.
func LevelSize(format bcn.Format, dims Dimensions) int {
	bw, bh := BlockExtent(format)
	if bw == 0 {
		return -1
	}
	blocksW := (dims.Width + bw - 1) / bw
	blocksH := (dims.Height + bh - 1) / bh

	return blocksW * blocksH * BlockSize(format)
}

// IsCompatible reports whether bytes laid out for native may be read
// through view. Each native block must hold a whole number of view blocks.
func IsCompatible(native, view bcn.Format) bool {
	nb := BlockSize(native)
	vb := BlockSize(view)
	if nb == 0 || vb == 0 {
		return false
	}

	return vb <= nb && nb%vb == 0
}

// GPUFormat maps format to its WebGPU texture format.
func GPUFormat(format bcn.Format) gputypes.TextureFormat {
	switch format {
	case bcn.FormatDXT1:
		return gputypes.TextureFormatBC1RGBAUnorm
	case bcn.FormatDXT3:
		return gputypes.TextureFormatBC2RGBAUnorm
	case bcn.FormatDXT5:
		return gputypes.TextureFormatBC3RGBAUnorm
	case bcn.FormatBC4:
		return gputypes.TextureFormatBC4RUnorm
	case bcn.FormatBC5:
		return gputypes.TextureFormatBC5RGUnorm
	case bcn.FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	case bcn.FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}
