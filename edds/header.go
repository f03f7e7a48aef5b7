package edds

import (
	"fmt"
	"io"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/texview"
)

// Reserved1 slots used by the container.
const (
	reservedMarker = 1
	reservedFaces  = 2
	reservedLayers = 3

	markerENF1 = 0x31464e45 // "ENF1"
)

// Config describes the layout of a container without its texel data.
type Config struct {
	Format     bcn.Format
	FormatName string
	Dimensions texview.Dimensions
	Layers     int
	Faces      int
	Levels     int
}

// Blocks returns the number of blocks stored in the container.
func (c Config) Blocks() int {
	return c.Layers * c.Faces * c.Levels
}

func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (bcn.Format, string) {
	if dx10 != nil {
		format := mapDxgiFormat(dx10.DXGIFormat)
		return format, fmt.Sprintf("DXGI %d", dx10.DXGIFormat)
	}

	pf := header.PixelFormat
	if (pf.Flags & bcn.DDSPFFourCC) != 0 {
		fourCCStr := intToFourCC(pf.FourCC)
		switch fourCCStr {
		case "DXT1":
			return bcn.FormatDXT1, fourCCStr
		case "DXT2", "DXT3":
			return bcn.FormatDXT3, fourCCStr
		case "DXT4", "DXT5":
			return bcn.FormatDXT5, fourCCStr
		case "ATI1", "BC4U", "BC4S":
			return bcn.FormatBC4, fourCCStr
		case "ATI2", "BC5U", "BC5S":
			return bcn.FormatBC5, fourCCStr
		default:
			return bcn.FormatUnknown, fourCCStr
		}
	}

	if (pf.Flags&bcn.DDSPFRGB) != 0 && (pf.Flags&bcn.DDSPFAlphaPixels) != 0 && pf.RGBBitCount == 32 {
		if pf.RBitMask == 0x000000ff && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x00ff0000 && pf.ABitMask == 0xff000000 {
			return bcn.FormatRGBA8, "RGBA8"
		}
		if pf.RBitMask == 0x00ff0000 && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x000000ff && pf.ABitMask == 0xff000000 {
			return bcn.FormatBGRA8, "BGRA8"
		}
	}

	return bcn.FormatUnknown, "UNKNOWN"
}

func mapDxgiFormat(dxgiFormat uint32) bcn.Format {
	switch dxgiFormat {
	case 71:
		return bcn.FormatDXT1
	case 74:
		return bcn.FormatDXT3
	case 77:
		return bcn.FormatDXT5
	case 80:
		return bcn.FormatBC4
	case 83:
		return bcn.FormatBC5
	case 87:
		return bcn.FormatBGRA8
	case 28:
		return bcn.FormatRGBA8
	default:
		return bcn.FormatUnknown
	}
}

func intToFourCC(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// makeDDSHeader describes storage s. Face and layer counts go to Reserved1
// next to the ENF1 marker.
func makeDDSHeader(s *texview.Storage) (*bcn.DDSHeader, error) {
	dims := s.Dimensions(0)
	var vals [5]uint32
	for i, n := range []int{dims.Width, dims.Height, s.Levels(), s.Faces(), s.Layers()} {
		v, err := texview.U32FromInt(n)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	width, height, levels, faces, layers := vals[0], vals[1], vals[2], vals[3], vals[4]

	flags := uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat)
	caps := uint32(bcn.DDSCapsTexture)
	if levels > 1 {
		flags |= bcn.DDSFlagMipmapCount
		caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}
	if faces > 1 || layers > 1 {
		caps |= bcn.DDSCapsComplex
	}

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       flags,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: levels,
		Caps:        caps,
	}
	hdr.Reserved1[reservedMarker] = markerENF1
	hdr.Reserved1[reservedFaces] = faces
	hdr.Reserved1[reservedLayers] = layers
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize

	switch s.Format() {
	case bcn.FormatDXT1, bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC4, bcn.FormatBC5:
		hdr.Flags |= bcn.DDSFlagLinearSize
		hdr.PixelFormat.Flags = bcn.DDSPFFourCC
		hdr.PixelFormat.FourCC = fourCCOf(s.Format())
		hdr.PitchOrLinearSize = uint32(s.LevelSize(0)) // #nosec G115 -- bounded by storage size
	case bcn.FormatRGBA8:
		hdr.Flags |= bcn.DDSFlagPitch
		hdr.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		hdr.PixelFormat.RGBBitCount = 32
		hdr.PixelFormat.RBitMask = 0x000000ff
		hdr.PixelFormat.GBitMask = 0x0000ff00
		hdr.PixelFormat.BBitMask = 0x00ff0000
		hdr.PixelFormat.ABitMask = 0xff000000
		hdr.PitchOrLinearSize = width * 4
	case bcn.FormatBGRA8:
		hdr.Flags |= bcn.DDSFlagPitch
		hdr.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		hdr.PixelFormat.RGBBitCount = 32
		hdr.PixelFormat.RBitMask = 0x00ff0000
		hdr.PixelFormat.GBitMask = 0x0000ff00
		hdr.PixelFormat.BBitMask = 0x000000ff
		hdr.PixelFormat.ABitMask = 0xff000000
		hdr.PitchOrLinearSize = width * 4
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, s.Format())
	}

	return hdr, nil
}

func fourCCOf(format bcn.Format) uint32 {
	switch format {
	case bcn.FormatDXT1:
		return makeFourCC('D', 'X', 'T', '1')
	case bcn.FormatDXT3:
		return makeFourCC('D', 'X', 'T', '3')
	case bcn.FormatDXT5:
		return makeFourCC('D', 'X', 'T', '5')
	case bcn.FormatBC4:
		return makeFourCC('A', 'T', 'I', '1')
	case bcn.FormatBC5:
		return makeFourCC('A', 'T', 'I', '2')
	default:
		return 0
	}
}

// readHeaders reads the DDS magic, header and optional DX10 extension.
func readHeaders(r io.Reader) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSHeaderRead, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSDX10Read, err)
	}

	return header, dx10, nil
}

// configFromHeader derives the storage layout described by a header.
// Files without face or layer counts hold a single 2D image chain.
func configFromHeader(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (Config, error) {
	format, name := detectFormat(header, dx10)
	if format == bcn.FormatUnknown {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidFormat, name)
	}

	levels := uint32(1)
	if (header.Caps&bcn.DDSCapsMipmap) != 0 && header.MipMapCount > 0 {
		levels = header.MipMapCount
	}
	faces, layers := uint32(1), uint32(1)
	if header.Reserved1[reservedMarker] == markerENF1 {
		faces = max(faces, header.Reserved1[reservedFaces])
		layers = max(layers, header.Reserved1[reservedLayers])
	}

	cfg := Config{
		Format:     format,
		FormatName: name,
		Dimensions: texview.Dimensions{Width: int(header.Width), Height: int(header.Height)},
		Layers:     int(layers),
		Faces:      int(faces),
		Levels:     int(levels),
	}
	if cfg.Dimensions.Width < 1 || cfg.Dimensions.Height < 1 || cfg.Levels > texview.MipLevels(cfg.Dimensions) {
		return Config{}, fmt.Errorf("%w: %s with %d levels", ErrInvalidLayout, cfg.Dimensions, cfg.Levels)
	}

	return cfg, nil
}
