package apng

// ColorType is the PNG color type byte, as per the PNG spec §11.2.2.
type ColorType uint8

const (
	ColorTypeGrayscale      ColorType = 0
	ColorTypeTrueColor      ColorType = 2
	ColorTypePaletted       ColorType = 3
	ColorTypeGrayscaleAlpha ColorType = 4
	ColorTypeTrueColorAlpha ColorType = 6
)

// samples returns the number of samples (channels) per pixel for the
// color type, as per the PNG spec.
func (c ColorType) samples() int {
	switch c {
	case ColorTypeGrayscale:
		return 1
	case ColorTypeTrueColor:
		return 3
	case ColorTypePaletted:
		return 1
	case ColorTypeGrayscaleAlpha:
		return 2
	case ColorTypeTrueColorAlpha:
		return 4
	default:
		return 1
	}
}

// Config holds the immutable parameters for one APNG encoding session.
// Every PNGImage written through an Encoder built from this Config must
// share its Width, Height, ColorType and BitDepth.
type Config struct {
	Width     uint32
	Height    uint32
	NumFrames uint32
	NumPlays  uint32 // 0 = loop forever
	Color     ColorType
	Depth     uint8 // bit depth: 1, 2, 4, 8, or 16
	Filter    FilterType
}

// BytesPerPixel returns the filter stride ("bpp" in spec terms): the
// number of whole bytes occupied by one pixel, clamped to at least 1.
//
// samples(color) * depth is a bit count; dividing (with ceiling) by 8
// converts it to bytes. See DESIGN.md for why this clamped form is used
// instead of the raw, unclamped product.
func (c Config) BytesPerPixel() int {
	bits := c.Color.samples() * int(c.Depth)
	bpp := (bits + 7) / 8
	if bpp < 1 {
		return 1
	}
	return bpp
}

// RowBytes returns the number of packed bytes in one image row, excluding
// the leading filter-type byte.
func (c Config) RowBytes() int {
	bits := int(c.Width) * c.Color.samples() * int(c.Depth)
	return (bits + 7) / 8
}

// RawRowLength returns RowBytes plus the one leading filter-type byte.
func (c Config) RawRowLength() int {
	return c.RowBytes() + 1
}

// CreateConfig derives a Config from the first of a list of frames, using
// its dimensions, color type and bit depth as the configuration for every
// subsequent frame. plays is the APNG loop count; nil means loop forever.
func CreateConfig(images []PNGImage, plays *uint32) (Config, error) {
	if len(images) == 0 {
		return Config{}, ImagesNotFoundError{}
	}
	first := images[0]
	numPlays := uint32(0)
	if plays != nil {
		numPlays = *plays
	}
	return Config{
		Width:     first.Width,
		Height:    first.Height,
		NumFrames: uint32(len(images)),
		NumPlays:  numPlays,
		Color:     first.ColorType,
		Depth:     first.BitDepth,
		Filter:    FilterNone,
	}, nil
}
