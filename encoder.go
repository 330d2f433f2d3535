package apng

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
)

// pngSignature is the 8-byte PNG file signature, per PNG spec §5.2.
var pngSignature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Encoder drives the PNG/APNG chunk stream state machine described in
// spec.md §4.4: signature, IHDR, acTL, then per-frame fcTL + IDAT (first
// frame) or fcTL + fdAT (subsequent frames), then IEND. It owns the 32-bit
// sequence counter shared by every emitted fcTL and fdAT chunk.
type Encoder struct {
	ctx  context.Context
	cfg  Config
	bw   *bufio.Writer
	cw   *chunkWriter
	tmp  [26]byte
	seq  uint32
	done uint32 // frames fully written so far
}

// New writes the PNG signature, IHDR and acTL chunks and returns an
// Encoder ready to accept frames. ctx is checked for cancellation at the
// start of every subsequent WriteFrame/EncodeAll iteration; pass
// context.Background() if cancellation is not needed.
func New(ctx context.Context, sink io.Writer, cfg Config) (*Encoder, error) {
	bw := bufio.NewWriterSize(sink, 1<<15)
	e := &Encoder{
		ctx: ctx,
		cfg: cfg,
		bw:  bw,
		cw:  newChunkWriter(bw),
	}
	if _, err := bw.Write(pngSignature[:]); err != nil {
		return nil, wrapIO(err, "apng: write signature")
	}
	if err := e.writeIHDR(); err != nil {
		return nil, err
	}
	if err := e.writeACTL(); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, wrapIO(err, "apng: flush sink")
	}
	return e, nil
}

func (e *Encoder) writeIHDR() error {
	var buf [13]byte
	binary.BigEndian.PutUint32(buf[0:4], e.cfg.Width)
	binary.BigEndian.PutUint32(buf[4:8], e.cfg.Height)
	buf[8] = e.cfg.Depth
	buf[9] = byte(e.cfg.Color)
	buf[10] = 0 // compression method
	buf[11] = 0 // filter method
	buf[12] = 0 // interlace method
	return e.cw.writeChunk("IHDR", buf[:])
}

func (e *Encoder) writeACTL() error {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], e.cfg.NumFrames)
	binary.BigEndian.PutUint32(buf[4:8], e.cfg.NumPlays)
	return e.cw.writeChunk("acTL", buf[:])
}

func (e *Encoder) writeFCTL(frame *Frame) error {
	v := resolveFrame(e.cfg, frame)
	buf := e.tmp[:26]
	binary.BigEndian.PutUint32(buf[0:4], e.seq)
	binary.BigEndian.PutUint32(buf[4:8], v.width)
	binary.BigEndian.PutUint32(buf[8:12], v.height)
	binary.BigEndian.PutUint32(buf[12:16], v.offsetX)
	binary.BigEndian.PutUint32(buf[16:20], v.offsetY)
	binary.BigEndian.PutUint16(buf[20:22], v.delayNum)
	binary.BigEndian.PutUint16(buf[22:24], v.delayDen)
	buf[24] = byte(v.disposeOp)
	buf[25] = byte(v.blendOp)
	if err := e.cw.writeChunk("fcTL", buf); err != nil {
		return err
	}
	e.seq++
	return nil
}

func (e *Encoder) writeIDAT(payload []byte) error {
	return e.cw.writeChunk("IDAT", payload)
}

func (e *Encoder) writeFDAT(payload []byte) error {
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], e.seq)
	copy(buf[4:], payload)
	if err := e.cw.writeChunk("fdAT", buf); err != nil {
		return err
	}
	e.seq++
	return nil
}

func (e *Encoder) writeFirstFrame(img PNGImage, frame *Frame) error {
	payload, err := compressFrame(e.cfg, img)
	if err != nil {
		return err
	}
	return e.writeFirstFrameCompressed(payload, frame)
}

func (e *Encoder) writeRestFrame(img PNGImage, frame *Frame) error {
	payload, err := compressFrame(e.cfg, img)
	if err != nil {
		return err
	}
	return e.writeRestFrameCompressed(payload, frame)
}

// writeFirstFrameCompressed and writeRestFrameCompressed let the Parallel
// Pipeline (parallel.go) reuse the sequential Encoder's chunk-emission
// logic once compression has already happened on a worker goroutine.
func (e *Encoder) writeFirstFrameCompressed(payload []byte, frame *Frame) error {
	if err := e.writeFCTL(frame); err != nil {
		return err
	}
	return e.writeIDAT(payload)
}

func (e *Encoder) writeRestFrameCompressed(payload []byte, frame *Frame) error {
	if err := e.writeFCTL(frame); err != nil {
		return err
	}
	return e.writeFDAT(payload)
}

// WriteFrame compresses and writes one frame, routing to the IDAT path for
// the first frame and the fdAT path for every subsequent one, per
// spec.md §4.4.
func (e *Encoder) WriteFrame(img PNGImage, frame *Frame) error {
	if err := e.ctx.Err(); err != nil {
		return err
	}
	var err error
	if e.done == 0 {
		err = e.writeFirstFrame(img, frame)
	} else {
		err = e.writeRestFrame(img, frame)
	}
	if err != nil {
		return err
	}
	e.done++
	return nil
}

// EncodeAll writes every image in order using defaultFrame for each one,
// then writes IEND. Unlike FinishEncode, it does not check the written
// frame count against Config.NumFrames.
func (e *Encoder) EncodeAll(images []PNGImage, defaultFrame *Frame) error {
	for _, img := range images {
		if err := e.ctx.Err(); err != nil {
			return err
		}
		if err := e.WriteFrame(img, defaultFrame); err != nil {
			return err
		}
	}
	return e.writeIENDAndFlush()
}

// FinishEncode requires that the number of frames written so far equals
// Config.NumFrames, then writes IEND. Returns WrongFrameNumsError
// otherwise, without writing IEND.
func (e *Encoder) FinishEncode() error {
	if e.done != e.cfg.NumFrames {
		return WrongFrameNumsError{Expected: e.cfg.NumFrames, Actual: e.done}
	}
	return e.writeIENDAndFlush()
}

func (e *Encoder) writeIENDAndFlush() error {
	if err := e.cw.writeChunk("IEND", nil); err != nil {
		return err
	}
	if err := e.bw.Flush(); err != nil {
		return wrapIO(err, "apng: flush sink")
	}
	return nil
}
