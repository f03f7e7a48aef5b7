package edds

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/texview"
)

// WriteOptions configures container writing.
type WriteOptions struct {
	// EncodeOptions are passed to the BCn encoder when faces are filled
	// from images.
	EncodeOptions *bcn.EncodeOptions
	// Compress stores LZ4 blocks where they pay off; false stores COPY only.
	Compress bool
}

// DefaultWriteOptions returns options used when nil is passed.
func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{Compress: true}
}

// levelVisitor receives one level image of the storage in file order.
type levelVisitor func(layer, face, level int, data []byte) error

// eachLevel walks s layer by layer, face by face, smallest mip first.
// Every data slice aliases storage memory.
func eachLevel(s *texview.Storage, visit levelVisitor) error {
	array := texview.WrapCubeArray(s)
	for layer := 0; layer < array.Layers(); layer++ {
		cube, err := array.Layer(layer)
		if err != nil {
			return fmt.Errorf("%w: layer %d: %w", ErrTextureAccess, layer, err)
		}
		for face := 0; face < cube.Faces(); face++ {
			tex, err := cube.Face(face)
			if err != nil {
				return fmt.Errorf("%w: layer %d face %d: %w", ErrTextureAccess, layer, face, err)
			}
			for level := tex.Levels() - 1; level >= 0; level-- {
				data, err := tex.Level(level)
				if err != nil {
					return fmt.Errorf("%w: layer %d face %d level %d: %w", ErrTextureAccess, layer, face, level, err)
				}
				if err := visit(layer, face, level, data); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Encode writes s as a container to w. Nil opts uses DefaultWriteOptions.
func Encode(w io.Writer, s *texview.Storage, opts *WriteOptions) error {
	if s.Empty() {
		return ErrEmptyStorage
	}
	if opts == nil {
		opts = DefaultWriteOptions()
	}

	header, err := makeDDSHeader(s)
	if err != nil {
		return err
	}

	log := texview.Logger()
	blocks := make([]*Block, 0, s.Layers()*s.Faces()*s.Levels())
	err = eachLevel(s, func(layer, face, level int, data []byte) error {
		var block *Block
		var err error
		if opts.Compress {
			block, err = compressBlock(data)
		} else {
			block, err = copyBlock(data)
		}
		if err != nil {
			return fmt.Errorf("%w: layer %d face %d level %d: %v", ErrCompressLevel, layer, face, level, err)
		}

		log.Debug("edds: block encoded",
			"layer", layer, "face", face, "level", level,
			"magic", block.Magic, "raw", len(data), "stored", block.Size)
		blocks = append(blocks, block)
		return nil
	})
	if err != nil {
		return err
	}

	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}
	if err := writeBlockTable(w, blocks); err != nil {
		return err
	}
	for i, block := range blocks {
		if err := writeBlockData(w, block); err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrWriteBlockData, i, err)
		}
	}

	return nil
}

// WriteFile encodes s into a container file at path.
func WriteFile(path string, s *texview.Storage, opts *WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, s, opts); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockData, err)
	}

	return f.Close()
}
