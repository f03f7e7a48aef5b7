package edds

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/bits"
	"os"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/texview"
)

const (
	dx10HeaderSize = 20

	// tableEntrySize is the block magic plus its int32 size.
	tableEntrySize = 8
	// maxLZ4Ratio bounds how many bytes one stored LZ4 byte inflates to.
	maxLZ4Ratio = 255
)

// ReadConfig reads the container layout without decoding texel data.
func ReadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	header, dx10, err := readHeaders(bufio.NewReader(f))
	if err != nil {
		return Config{}, err
	}

	return configFromHeader(header, dx10)
}

// ReadFile reads a container file into a new storage.
func ReadFile(path string) (*texview.Storage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode reads a container from r into a new storage. Every block is
// inflated straight into its level of the storage.
func Decode(r io.ReadSeeker) (*texview.Storage, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSeekDataStart, err)
	}

	header, dx10, err := readHeaders(r)
	if err != nil {
		return nil, err
	}
	cfg, err := configFromHeader(header, dx10)
	if err != nil {
		return nil, err
	}

	avail, err := remainingBytes(r)
	if err != nil {
		return nil, err
	}

	var s *texview.Storage
	table, err := readCheckedTable(r, cfg, avail)
	if err == nil {
		s, err = texview.NewStorage(cfg.Layers, cfg.Faces, cfg.Levels, cfg.Format, cfg.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}
		err = decodeBlocks(r, s, table)
	}
	if err == nil {
		return s, nil
	}

	if cfg.Layers != 1 || cfg.Faces != 1 {
		return nil, fmt.Errorf("%w: %w", ErrReadBlockTable, err)
	}

	texview.Logger().Warn("edds: block table unreadable, trying single block", "error", err)
	dataStart := start + int64(4+bcn.DDSHeaderSize)
	if dx10 != nil {
		dataStart += dx10HeaderSize
	}

	return readLegacySingleBlock(r, dataStart, cfg)
}

// remainingBytes returns the number of bytes from the current position of r
// to its end and leaves the position unchanged.
func remainingBytes(r io.Seeker) (int64, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSeekDataStart, err)
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSeekDataStart, err)
	}
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSeekDataStart, err)
	}

	return end - pos, nil
}

// readCheckedTable reads the block table of cfg and checks that avail bytes
// can hold it together with bodies large enough for every level.
func readCheckedTable(r io.Reader, cfg Config, avail int64) ([]blockHeader, error) {
	entries := avail / tableEntrySize
	faces, layers, levels := int64(cfg.Faces), int64(cfg.Layers), int64(cfg.Levels)
	if faces > entries || layers > entries/faces || levels > entries/(faces*layers) {
		return nil, fmt.Errorf("%w: %d layers of %d faces with %d levels, %d bytes left",
			ErrLayoutExceedsInput, cfg.Layers, cfg.Faces, cfg.Levels, avail)
	}

	table, err := readBlockTable(r, cfg.Blocks())
	if err != nil {
		return nil, err
	}

	bodies := avail - int64(len(table))*tableEntrySize
	var stored int64
	i := 0
	for layer := 0; layer < cfg.Layers; layer++ {
		for face := 0; face < cfg.Faces; face++ {
			for level := cfg.Levels - 1; level >= 0; level-- {
				h := table[i]
				need, err := levelBytes(cfg.Format, texview.MipDimensions(cfg.Dimensions, level))
				if err != nil {
					return nil, err
				}

				stored += int64(h.Size)
				switch {
				case stored > bodies:
					return nil, fmt.Errorf("%w: block %d ends past input", ErrLayoutExceedsInput, i)
				case h.Magic == BlockMagicCOPY && int64(h.Size) != need:
					return nil, fmt.Errorf("%w: block %d stores %d bytes, level %d needs %d",
						ErrLayoutExceedsInput, i, h.Size, level, need)
				case h.Magic == BlockMagicLZ4 && need > maxLZ4Ratio*int64(h.Size):
					return nil, fmt.Errorf("%w: block %d of %d bytes cannot inflate to %d",
						ErrLayoutExceedsInput, i, h.Size, need)
				}
				i++
			}
		}
	}

	return table, nil
}

// levelBytes is texview.LevelSize with overflow reported for header
// dimensions no storage can hold.
func levelBytes(format bcn.Format, dims texview.Dimensions) (int64, error) {
	bw, bh := texview.BlockExtent(format)
	if bw == 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, format)
	}

	blocksW := uint64((dims.Width + bw - 1) / bw) // #nosec G115 -- header dimensions are positive
	blocksH := uint64((dims.Height + bh - 1) / bh)
	size := uint64(texview.BlockSize(format))

	hi, n := bits.Mul64(blocksW, blocksH)
	if hi != 0 || n > math.MaxInt64/size {
		return 0, fmt.Errorf("%w: level %s", ErrLayoutExceedsInput, dims)
	}

	return int64(n * size), nil // #nosec G115 -- checked above
}

// decodeBlocks reads the bodies listed in table into s in file order.
func decodeBlocks(r io.Reader, s *texview.Storage, table []blockHeader) error {
	log := texview.Logger()
	i := 0

	return eachLevel(s, func(layer, face, level int, dst []byte) error {
		block, err := readBlockBody(r, table[i])
		if err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrDecompressBlock, i, err)
		}
		if err := decodeBlockInto(block, dst); err != nil {
			return fmt.Errorf("%w: layer %d face %d level %d: %v", ErrDecompressBlock, layer, face, level, err)
		}

		log.Debug("edds: block decoded",
			"layer", layer, "face", face, "level", level,
			"magic", block.Magic, "stored", block.Size, "raw", len(dst))
		i++
		return nil
	})
}

// readLegacySingleBlock reads files that store one payload after the header
// instead of a block table. The payload is tried as an LZ4 chunk stream,
// with or without a size prefix, then as raw data of the base level.
func readLegacySingleBlock(r io.ReadSeeker, dataStart int64, cfg Config) (*texview.Storage, error) {
	if _, err := r.Seek(dataStart, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSeekDataStart, err)
	}
	remaining, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadRemainingData, err)
	}

	need, err := levelBytes(cfg.Format, cfg.Dimensions)
	if err != nil {
		return nil, err
	}
	if need > maxLZ4Ratio*int64(len(remaining)) {
		return nil, fmt.Errorf("%w: level needs %d bytes, %d stored", ErrLayoutExceedsInput, need, len(remaining))
	}

	s, err := texview.NewStorage(1, 1, 1, cfg.Format, cfg.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	dst := s.Data()

	candidates := [][]byte{remaining}
	if len(remaining) >= 4 {
		candidates = append([][]byte{remaining[4:]}, candidates...)
	}
	for _, data := range candidates {
		if err = decodeBlockInto(&Block{Magic: BlockMagicLZ4, Data: data}, dst); err == nil {
			return s, nil
		}
	}
	if len(remaining) == len(dst) {
		copy(dst, remaining)
		return s, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrParseSingleBlock, err)
}
