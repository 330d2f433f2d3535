package apng

import (
	"bytes"
	"compress/zlib"
)

// compressFrame builds the compressed data stream for one frame: for each
// row it writes the filter-type byte followed by the filtered row into a
// single DEFLATE (zlib-wrapped) stream at best compression, producing the
// opaque IDAT/fdAT payload body (without any fdAT sequence prefix).
//
// The bytes used as "prev" for row i+1 are the FILTERED bytes of row i, not
// the reconstructed original — see DESIGN.md open question 2. This must be
// reproduced exactly to match the reference encoder byte-for-byte.
func compressFrame(cfg Config, img PNGImage) ([]byte, error) {
	rowBytes := cfg.RowBytes()
	expected := rowBytes * int(cfg.Height)
	if expected != len(img.Data) {
		return nil, WrongDataSizeError{Expected: expected, Got: len(img.Data)}
	}

	var out bytes.Buffer
	zw, err := zlib.NewWriterLevel(&out, zlib.BestCompression)
	if err != nil {
		return nil, wrapIO(err, "apng: open deflate stream")
	}

	bpp := cfg.BytesPerPixel()
	prev := make([]byte, rowBytes)
	current := make([]byte, rowBytes)
	filterTypeByte := [1]byte{byte(cfg.Filter)}

	for y := 0; y < int(cfg.Height); y++ {
		start := y * rowBytes
		copy(current, img.Data[start:start+rowBytes])

		if _, err := zw.Write(filterTypeByte[:]); err != nil {
			return nil, wrapIO(err, "apng: write filter type byte")
		}
		applyFilter(cfg.Filter, bpp, prev, current)
		if _, err := zw.Write(current); err != nil {
			return nil, wrapIO(err, "apng: write filtered row")
		}

		prev, current = current, prev
	}

	if err := zw.Close(); err != nil {
		return nil, wrapIO(err, "apng: close deflate stream")
	}
	return out.Bytes(), nil
}
