package apng

// PNGImage is an already-decoded frame: its Data is contiguous, row-major,
// uncompressed, unfiltered pixel bytes of the declared ColorType/BitDepth.
// len(Data) must equal Height * rowBytes(Width, ColorType, BitDepth); the
// Frame Compressor validates this and returns WrongDataSizeError otherwise.
//
// PNGImage is consumed (moved) by the Encoder; callers must not mutate
// Data after handing it to WriteFrame/EncodeAll/Send.
type PNGImage struct {
	Width     uint32
	Height    uint32
	ColorType ColorType
	BitDepth  uint8
	Data      []byte
}
