/*
Package edds persists texview storages in an Enfusion-style DDS container
with optional LZ4 chunk-stream compression.

A container holds a DDS header followed by a block table and block bodies.
There is one block per (layer, face, level), ordered layer by layer and face
by face, each face running from the smallest mip to the largest. Blocks are
stored as COPY or as LZ4 chunk streams with a rolling 64KB dictionary. Face
and layer counts live in the reserved header words next to an ENF1 marker;
files without them are read as a single 2D mip chain.

Decode inflates every block straight into the level it belongs to, so the
result is one contiguous storage ready for zero-copy views. FillFace and
DecodeLevel move images in and out of a face through the BCn codec.
*/
package edds
