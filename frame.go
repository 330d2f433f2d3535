package apng

// DisposeOp specifies how a frame's output buffer is treated before the
// next frame is rendered, as per the APNG spec.
type DisposeOp uint8

const (
	DisposeOpNone       DisposeOp = 0
	DisposeOpBackground DisposeOp = 1
	DisposeOpPrevious   DisposeOp = 2
)

// BlendOp specifies how a frame is composited onto the output buffer, as
// per the APNG spec.
type BlendOp uint8

const (
	BlendOpSource BlendOp = 0
	BlendOpOver   BlendOp = 1
)

// Frame carries optional per-frame fcTL overrides. A nil field falls back
// to the Config dimensions (for Width/Height), zero (for OffsetX/OffsetY),
// or the defaults documented on resolveFrame below. Frame is borrowed for
// the duration of one write and never stored by the Encoder.
type Frame struct {
	Width     *uint32
	Height    *uint32
	OffsetX   *uint32
	OffsetY   *uint32
	DelayNum  *uint16
	DelayDen  *uint16
	DisposeOp *DisposeOp
	BlendOp   *BlendOp
}

// frameValues is the fully-resolved set of fcTL fields for one frame,
// after merging a *Frame (which may be nil) against Config defaults.
type frameValues struct {
	width, height     uint32
	offsetX, offsetY  uint32
	delayNum, delayDen uint16
	disposeOp         DisposeOp
	blendOp           BlendOp
}

// resolveFrame merges frame's overrides (if any) with cfg's defaults, matching
// original_source/src/apng.rs write_fc_tl's unwrap_or chain. Per spec.md
// §3/§9, the delay defaults are numerator=1, denominator=3.
func resolveFrame(cfg Config, frame *Frame) frameValues {
	v := frameValues{
		width:     cfg.Width,
		height:    cfg.Height,
		offsetX:   0,
		offsetY:   0,
		delayNum:  1,
		delayDen:  3,
		disposeOp: DisposeOpNone,
		blendOp:   BlendOpSource,
	}
	if frame == nil {
		return v
	}
	if frame.Width != nil {
		v.width = *frame.Width
	}
	if frame.Height != nil {
		v.height = *frame.Height
	}
	if frame.OffsetX != nil {
		v.offsetX = *frame.OffsetX
	}
	if frame.OffsetY != nil {
		v.offsetY = *frame.OffsetY
	}
	if frame.DelayNum != nil {
		v.delayNum = *frame.DelayNum
	}
	if frame.DelayDen != nil {
		v.delayDen = *frame.DelayDen
	}
	if frame.DisposeOp != nil {
		v.disposeOp = *frame.DisposeOp
	}
	if frame.BlendOp != nil {
		v.blendOp = *frame.BlendOp
	}
	return v
}
