package edds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/woozymasta/texview"
)

const (
	// BlockMagicCOPY marks an uncompressed block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4-compressed block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the chunk size of LZ4 chunk streams, also the size of
	// the rolling dictionary.
	ChunkSize = 64 * 1024

	// minCompressSize is the smallest level worth compressing.
	minCompressSize = 1024
	// maxCompressRatio is the compressed/raw ratio above which COPY is kept.
	maxCompressRatio = 0.85

	lastChunkFlag = 0x80
)

// Block is the stored body of one (layer, face, level) image.
type Block struct {
	Magic            string
	Data             []byte
	Size             int32
	UncompressedSize int32
}

// copyBlock wraps raw level bytes without copying them.
func copyBlock(data []byte) (*Block, error) {
	size, err := texview.I32FromInt(len(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(data))
	}

	return &Block{Magic: BlockMagicCOPY, Size: size, Data: data}, nil
}

// compressBlock encodes data as an LZ4 chunk stream, or returns a COPY
// block when compression does not pay off.
func compressBlock(data []byte) (*Block, error) {
	raw, err := copyBlock(data)
	if err != nil {
		return nil, err
	}
	if len(data) < minCompressSize {
		return raw, nil
	}

	var stream bytes.Buffer
	scratch := make([]byte, lz4.CompressBlockBound(ChunkSize))

	for begin := 0; begin < len(data); begin += ChunkSize {
		end := min(begin+ChunkSize, len(data))
		chunk := data[begin:end]

		n, err := lz4.CompressBlockHC(chunk, scratch, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if n == 0 || float64(n) > float64(len(chunk))*maxCompressRatio {
			return raw, nil
		}
		if n > 0x7FFFFF {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, n)
		}

		flags := byte(0)
		if end == len(data) {
			flags = lastChunkFlag
		}
		stream.Write([]byte{byte(n), byte(n >> 8), byte(n >> 16), flags})
		stream.Write(scratch[:n])
	}

	total := 4 + stream.Len()
	if float64(total) > float64(len(data))*maxCompressRatio {
		return raw, nil
	}
	size, err := texview.I32FromInt(total)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrCompressedDataTooLarge, total)
	}

	return &Block{
		Magic:            BlockMagicLZ4,
		Size:             size,
		UncompressedSize: raw.Size,
		Data:             stream.Bytes(),
	}, nil
}

// writeBlockData writes the block payload (no table entry).
func writeBlockData(w io.Writer, block *Block) error {
	if block.Magic == BlockMagicLZ4 {
		if err := binary.Write(w, binary.LittleEndian, block.UncompressedSize); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteUncompressedSize, err)
		}
		if _, err := w.Write(block.Data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteChunkStream, err)
		}
		return nil
	}
	if _, err := w.Write(block.Data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockPayload, err)
	}

	return nil
}

// decodeBlockInto inflates block straight into dst, which must have the
// exact size of the level. LZ4 data is the bare chunk stream.
func decodeBlockInto(block *Block, dst []byte) error {
	switch block.Magic {
	case BlockMagicCOPY:
		if len(block.Data) != len(dst) {
			return fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, len(dst), len(block.Data))
		}
		copy(dst, block.Data)
		return nil
	case BlockMagicLZ4:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBlockMagic, block.Magic)
	}

	if block.UncompressedSize != 0 && int(block.UncompressedSize) != len(dst) {
		return fmt.Errorf("%w: expected %d, header says %d", ErrDecodedSizeMismatch, len(dst), block.UncompressedSize)
	}

	dict := make([]byte, 0, ChunkSize)
	r := bytes.NewReader(block.Data)
	out := 0

	for {
		var hdr [4]byte
		if r.Len() < len(hdr) {
			return fmt.Errorf("%w: need 4 bytes header, have %d", ErrChunkStreamTruncated, r.Len())
		}
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return fmt.Errorf("%w: %v", ErrChunkHeaderRead, err)
		}

		cSize := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		flags := hdr[3]
		if flags&^lastChunkFlag != 0 {
			return fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > r.Len() {
			return fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, r.Len())
		}

		compressed := make([]byte, cSize)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return fmt.Errorf("%w: %v", ErrChunkDataRead, err)
		}

		if out >= len(dst) {
			return ErrDecodeOverrun
		}
		target := dst[out:min(out+ChunkSize, len(dst))]

		n, err := lz4.UncompressBlockWithDict(compressed, target, dict)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		dict = slideDict(dict, target[:n])
		out += n

		if flags&lastChunkFlag != 0 {
			break
		}
	}

	if out != len(dst) {
		return fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, len(dst), out)
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Len())
	}

	return nil
}

// slideDict appends decoded to the dictionary window, keeping only the
// last ChunkSize bytes.
func slideDict(dict, decoded []byte) []byte {
	if len(decoded) >= ChunkSize {
		return append(dict[:0], decoded[len(decoded)-ChunkSize:]...)
	}
	if overflow := len(dict) + len(decoded) - ChunkSize; overflow > 0 {
		dict = append(dict[:0], dict[overflow:]...)
	}

	return append(dict, decoded...)
}

type blockHeader struct {
	Magic string
	Size  int32
}

func writeBlockTable(w io.Writer, blocks []*Block) error {
	for i, block := range blocks {
		if _, err := io.WriteString(w, block.Magic); err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrWriteBlockMagic, i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, block.Size); err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrWriteBlockSize, i, err)
		}
	}

	return nil
}

func readBlockTable(r io.Reader, count int) ([]blockHeader, error) {
	hdrs := make([]blockHeader, 0, count)
	for i := 0; i < count; i++ {
		var magic [4]byte
		if _, err := io.ReadFull(r, magic[:]); err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableMagicRead, i, err)
		}

		var size int32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableSizeRead, i, err)
		}

		m := string(magic[:])
		if m != BlockMagicCOPY && m != BlockMagicLZ4 {
			return nil, fmt.Errorf("%w: %d: %q", ErrBlockTableUnknownMagic, i, m)
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		hdrs = append(hdrs, blockHeader{Magic: m, Size: size})
	}

	return hdrs, nil
}

// readBlockBody reads one body. LZ4 bodies lose their uncompressed size
// prefix here.
func readBlockBody(r io.Reader, h blockHeader) (*Block, error) {
	data := make([]byte, h.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockBodyRead, h.Magic, err)
	}

	block := &Block{Magic: h.Magic, Size: h.Size, Data: data}
	if h.Magic == BlockMagicLZ4 {
		if len(data) < 4 {
			return nil, fmt.Errorf("%w: need 4 bytes size prefix, have %d", ErrChunkStreamTruncated, len(data))
		}
		block.UncompressedSize = int32(binary.LittleEndian.Uint32(data[:4])) // #nosec G115 -- validated against level size
		block.Data = data[4:]
	}

	return block, nil
}
