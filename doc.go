/*
Package texview provides zero-copy views over a single contiguous texel
buffer holding the face/level pyramid of a cube map, a 2D texture or an array
of cube maps.

A Storage owns the bytes, laid out layer -> face -> level. Texture façades
(Cube, Texture2D, CubeArray) pair a shared *Storage with a View, an inclusive
range of layers, faces and levels, and a format the bytes are read as.
Deriving a face, a mip range, an array layer or a reinterpreted format never
copies texel data: all façades alias the same storage and observe each
other's writes.

Offset is the only place byte offsets are computed. Misusing a façade
(accessing an empty one, selecting a face past the view, typed access wider
than a block) returns an error that IsContractViolation recognises. Invalid
layouts passed to constructors return plain wrapped errors.

The package does not compress, decompress or upload texels; see the edds
sub-package for persistence.
*/
package texview
