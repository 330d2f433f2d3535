package apng

import (
	"encoding/binary"
	"hash/crc32"
	"io"
)

// chunkWriter writes length-prefixed, CRC-suffixed PNG chunks to a sink, as
// per the PNG spec §5.3. All multi-byte integers are big-endian.
type chunkWriter struct {
	w      io.Writer
	header [8]byte
	footer [4]byte
}

func newChunkWriter(w io.Writer) *chunkWriter {
	return &chunkWriter{w: w}
}

// writeChunk writes the 4-byte big-endian length of data, the 4 type
// bytes, data itself, and the 4-byte big-endian CRC-32 (IEEE) of
// type‖data, in that order.
func (cw *chunkWriter) writeChunk(chunkType string, data []byte) error {
	binary.BigEndian.PutUint32(cw.header[:4], uint32(len(data)))
	cw.header[4] = chunkType[0]
	cw.header[5] = chunkType[1]
	cw.header[6] = chunkType[2]
	cw.header[7] = chunkType[3]

	crc := crc32.NewIEEE()
	crc.Write(cw.header[4:8])
	crc.Write(data)
	binary.BigEndian.PutUint32(cw.footer[:4], crc.Sum32())

	if _, err := cw.w.Write(cw.header[:8]); err != nil {
		return wrapIO(err, "apng: write chunk header")
	}
	if len(data) > 0 {
		if _, err := cw.w.Write(data); err != nil {
			return wrapIO(err, "apng: write "+chunkType+" data")
		}
	}
	if _, err := cw.w.Write(cw.footer[:4]); err != nil {
		return wrapIO(err, "apng: write chunk crc")
	}
	return nil
}
