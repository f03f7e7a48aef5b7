package edds

import "errors"

var (
	// ErrInvalidFormat indicates unsupported format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrEmptyStorage indicates an attempt to encode empty storage.
	ErrEmptyStorage = errors.New("empty storage")
	// ErrInputTooLarge indicates input data is too large to encode.
	ErrInputTooLarge = errors.New("input data too large")
	// ErrCompressedDataTooLarge indicates compressed payload exceeds limits.
	ErrCompressedDataTooLarge = errors.New("compressed data too large")
	// ErrChunkTooLarge indicates a compressed chunk exceeds allowed size.
	ErrChunkTooLarge = errors.New("compressed chunk too large")
	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = errors.New("COPY block size mismatch")
	// ErrUnknownBlockMagic indicates an unknown block magic.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrDecodeOverrun indicates decoded data overruns the target level.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = errors.New("LZ4 decoded size mismatch")
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = errors.New("LZ4 block length mismatch")
	// ErrBlockTableMagicRead indicates block table magic read failed.
	ErrBlockTableMagicRead = errors.New("reading block table magic failed")
	// ErrBlockTableSizeRead indicates block table size read failed.
	ErrBlockTableSizeRead = errors.New("reading block table size failed")
	// ErrBlockTableUnknownMagic indicates unknown block magic in table.
	ErrBlockTableUnknownMagic = errors.New("unknown block magic in table")
	// ErrBlockTableInvalidSize indicates invalid size in block table.
	ErrBlockTableInvalidSize = errors.New("invalid block size in table")
	// ErrBlockBodyRead indicates block body read failed.
	ErrBlockBodyRead = errors.New("reading block body failed")
	// ErrDDSHeaderRead indicates DDS header read failed.
	ErrDDSHeaderRead = errors.New("reading DDS header failed")
	// ErrDDSDX10Read indicates DDS DX10 header read failed.
	ErrDDSDX10Read = errors.New("reading DDS DX10 header failed")
	// ErrInvalidLayout indicates header dimensions or counts that cannot form a storage.
	ErrInvalidLayout = errors.New("invalid texture layout")
	// ErrLayoutExceedsInput indicates a header layout larger than the input can hold.
	ErrLayoutExceedsInput = errors.New("texture layout exceeds input size")
	// ErrOpenFile indicates file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrReadBlockTable indicates block table read failed.
	ErrReadBlockTable = errors.New("read block table failed")
	// ErrDecompressBlock indicates block decompression failed.
	ErrDecompressBlock = errors.New("decompress block failed")
	// ErrSeekDataStart indicates seek to data start failed.
	ErrSeekDataStart = errors.New("seek to data start failed")
	// ErrReadRemainingData indicates reading remaining data failed.
	ErrReadRemainingData = errors.New("reading remaining data failed")
	// ErrParseSingleBlock indicates failure parsing legacy single block.
	ErrParseSingleBlock = errors.New("failed to parse single block")
	// ErrCompressLevel indicates level compression failed.
	ErrCompressLevel = errors.New("compress level failed")
	// ErrWriteDDSMagic indicates DDS magic write failed.
	ErrWriteDDSMagic = errors.New("writing DDS magic failed")
	// ErrWriteDDSHeader indicates DDS header write failed.
	ErrWriteDDSHeader = errors.New("writing DDS header failed")
	// ErrWriteBlockMagic indicates block magic write failed.
	ErrWriteBlockMagic = errors.New("writing block magic failed")
	// ErrWriteBlockSize indicates block size write failed.
	ErrWriteBlockSize = errors.New("writing block size failed")
	// ErrWriteBlockData indicates block data write failed.
	ErrWriteBlockData = errors.New("writing block data failed")
	// ErrWriteUncompressedSize indicates uncompressed size write failed.
	ErrWriteUncompressedSize = errors.New("writing uncompressed size failed")
	// ErrWriteChunkStream indicates chunk stream write failed.
	ErrWriteChunkStream = errors.New("writing chunk stream failed")
	// ErrWriteBlockPayload indicates block payload write failed.
	ErrWriteBlockPayload = errors.New("writing block payload failed")
	// ErrChunkHeaderRead indicates LZ4 chunk header read failed.
	ErrChunkHeaderRead = errors.New("reading chunk header failed")
	// ErrChunkDataRead indicates LZ4 chunk data read failed.
	ErrChunkDataRead = errors.New("reading chunk data failed")
	// ErrImageSizeMismatch indicates an image that does not match the face size.
	ErrImageSizeMismatch = errors.New("image size mismatch")
	// ErrMipmapCount indicates too few generated mipmaps for a face.
	ErrMipmapCount = errors.New("not enough mipmaps")
	// ErrMipmapSizeMismatch indicates an encoded mipmap of unexpected size.
	ErrMipmapSizeMismatch = errors.New("mipmap size mismatch")
	// ErrEncodeImage indicates BCn encoding failed.
	ErrEncodeImage = errors.New("encode image failed")
	// ErrDecodeImage indicates BCn decoding failed.
	ErrDecodeImage = errors.New("decode image failed")
	// ErrTextureAccess indicates a texture view could not be addressed.
	ErrTextureAccess = errors.New("texture access failed")
)
