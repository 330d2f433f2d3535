package apng

import (
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// defaultChannelBound is the depth of the parallel pipeline's input and
// order-preserving output queues when the caller does not specify one.
const defaultChannelBound = 32

type compressOutcome struct {
	payload []byte
	err     error
}

// job is handed to a worker: compress img, report the result on resultCh.
type job struct {
	img      PNGImage
	resultCh chan compressOutcome
}

// pending is a "promise" pushed onto the order queue at submission time,
// before the corresponding job has necessarily even started compressing.
// The writer goroutine drains the order queue strictly in submission
// order and blocks on resultCh, which is what keeps emission order equal
// to submission order regardless of which worker finishes first — the
// same structure as the retrieved SaveTheRbtz/zstd-seekable-format-go
// writer's channel-of-channels queue.
type pending struct {
	frame    *Frame
	resultCh chan compressOutcome
}

// parallelCore is the shared engine behind both the push-based
// ParallelEncoder and the callback-based EncodeParallel surfaces from
// spec.md §4.5.
type parallelCore struct {
	sink        io.Writer
	numFrames   uint32
	numPlays    uint32
	workerCount int
	g           *errgroup.Group
	ctx         context.Context
	jobs        chan job
	order       chan pending
	enc         *Encoder
}

func newParallelCore(parentCtx context.Context, sink io.Writer, numFrames, numPlays uint32, channelBound int) *parallelCore {
	if channelBound <= 0 {
		channelBound = defaultChannelBound
	}
	g, ctx := errgroup.WithContext(parentCtx)
	return &parallelCore{
		sink:        sink,
		numFrames:   numFrames,
		numPlays:    numPlays,
		workerCount: runtime.GOMAXPROCS(0),
		g:           g,
		ctx:         ctx,
		jobs:        make(chan job, channelBound),
		order:       make(chan pending, channelBound),
	}
}

// start builds Config from the first frame, writes signature/IHDR/acTL/
// fcTL(seq=0)/IDAT synchronously, and spawns the worker pool and writer
// goroutine for every subsequent frame.
func (c *parallelCore) start(first PNGImage, defaultFrame *Frame) error {
	cfg := Config{
		Width:     first.Width,
		Height:    first.Height,
		NumFrames: c.numFrames,
		NumPlays:  c.numPlays,
		Color:     first.ColorType,
		Depth:     first.BitDepth,
		Filter:    FilterNone,
	}
	enc, err := New(c.ctx, c.sink, cfg)
	if err != nil {
		return err
	}
	payload, err := compressFrame(cfg, first)
	if err != nil {
		return err
	}
	if err := enc.writeFirstFrameCompressed(payload, defaultFrame); err != nil {
		return err
	}
	enc.done = 1
	c.enc = enc

	for i := 0; i < c.workerCount; i++ {
		c.g.Go(c.workerLoop)
	}
	c.g.Go(c.writerLoop)
	return nil
}

// send submits one frame for compression. It blocks when the order or
// job queues are full (backpressure, per spec.md §5), and returns the
// pipeline's context error if a worker has already failed.
func (c *parallelCore) send(img PNGImage, frame *Frame) error {
	resultCh := make(chan compressOutcome, 1)
	select {
	case c.order <- pending{frame: frame, resultCh: resultCh}:
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
	select {
	case c.jobs <- job{img: img, resultCh: resultCh}:
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
	return nil
}

// finalize closes the submission queues, joins every worker and the
// writer, and — if nothing failed — writes IEND via FinishEncode's usual
// frame-count check.
func (c *parallelCore) finalize() error {
	close(c.order)
	close(c.jobs)
	if err := c.g.Wait(); err != nil {
		return err
	}
	if c.enc == nil {
		return ImagesNotFoundError{}
	}
	return c.enc.FinishEncode()
}

func (c *parallelCore) workerLoop() error {
	for {
		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		case j, ok := <-c.jobs:
			if !ok {
				return nil
			}
			payload, err := compressFrame(c.enc.cfg, j.img)
			select {
			case j.resultCh <- compressOutcome{payload: payload, err: err}:
			case <-c.ctx.Done():
				return c.ctx.Err()
			}
		}
	}
}

func (c *parallelCore) writerLoop() error {
	for {
		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		case p, ok := <-c.order:
			if !ok {
				return nil
			}
			var outcome compressOutcome
			select {
			case outcome = <-p.resultCh:
			case <-c.ctx.Done():
				return c.ctx.Err()
			}
			if outcome.err != nil {
				return outcome.err
			}
			if err := c.enc.writeRestFrameCompressed(outcome.payload, p.frame); err != nil {
				return err
			}
			c.enc.done++
		}
	}
}

// ParallelEncoder is the push-based surface of the Parallel Pipeline
// (spec.md §4.5(a)): construct it with the first frame, Send the rest,
// then Finalize. Finalize must be called — deferred, typically — since Go
// has no destructor to join the writer goroutine on; see DESIGN.md.
type ParallelEncoder struct {
	core         *parallelCore
	defaultFrame *Frame
}

// NewParallelEncoder derives Config from first and numFrames, writes the
// first frame synchronously, and starts the worker pool for the rest.
// channelBound <= 0 selects the default of 32.
func NewParallelEncoder(ctx context.Context, sink io.Writer, first PNGImage, defaultFrame *Frame, numFrames uint32, numPlays uint32, channelBound int) (*ParallelEncoder, error) {
	core := newParallelCore(ctx, sink, numFrames, numPlays, channelBound)
	if err := core.start(first, defaultFrame); err != nil {
		return nil, err
	}
	return &ParallelEncoder{core: core, defaultFrame: defaultFrame}, nil
}

// Send submits the next frame, blocking when the pipeline is full.
func (p *ParallelEncoder) Send(img PNGImage) error {
	return p.core.send(img, p.defaultFrame)
}

// Finalize closes submission, joins the writer, and writes IEND. It
// propagates the first error encountered by any worker or the writer.
func (p *ParallelEncoder) Finalize() error {
	return p.core.finalize()
}

// EncodeParallel is the callback-based surface of the Parallel Pipeline
// (spec.md §4.5(b)): producer is handed a send function and drives frame
// production itself; Config is deferred until producer's first send call.
func EncodeParallel(ctx context.Context, sink io.Writer, defaultFrame *Frame, numFrames uint32, numPlays uint32, channelBound int, producer func(send func(PNGImage) error) error) error {
	core := newParallelCore(ctx, sink, numFrames, numPlays, channelBound)

	first := true
	send := func(img PNGImage) error {
		if first {
			first = false
			return core.start(img, defaultFrame)
		}
		return core.send(img, defaultFrame)
	}

	if err := producer(send); err != nil {
		_ = core.finalize()
		return err
	}
	return core.finalize()
}
