// Package apng encodes an ordered sequence of equally-shaped raster frames
// into an Animated PNG (APNG) byte stream: the PNG signature, IHDR, acTL,
// then per-frame fcTL paired with IDAT (first frame) or fdAT (every frame
// after), then IEND.
//
// The package does not decode PNG, read or write files, or parse CLI
// flags or configuration — callers supply already-decoded PNGImage values
// and an io.Writer sink. Two encoders are provided: Encoder, which writes
// frames one at a time as they're handed to it, and ParallelEncoder /
// EncodeParallel, which overlap per-frame compression across a worker
// pool while preserving submission order in the emitted chunk stream.
package apng
