package apng

// FilterType is the PNG per-row filter method byte, as per the PNG spec §6.2.
type FilterType uint8

const (
	FilterNone  FilterType = 0
	FilterSub   FilterType = 1
	FilterUp    FilterType = 2
	FilterAvg   FilterType = 3
	FilterPaeth FilterType = 4
)

// applyFilter rewrites current in place, applying the named filter given
// the previous row's bytes and the filter stride bpp. bpp must be >= 1.
// prev and current must be the same length. All arithmetic is modulo 256
// with wraparound subtraction, matching PNG spec §6 and
// original_source/src/apng.rs's filter().
func applyFilter(method FilterType, bpp int, prev, current []byte) {
	if bpp < 1 {
		bpp = 1
	}
	switch method {
	case FilterNone:
		// no change
	case FilterSub:
		filterSub(bpp, current)
	case FilterUp:
		filterUp(bpp, prev, current)
	case FilterAvg:
		filterAvg(bpp, prev, current)
	case FilterPaeth:
		filterPaeth(bpp, prev, current)
	}
}

func filterSub(bpp int, current []byte) {
	for i := len(current) - 1; i >= bpp; i-- {
		current[i] -= current[i-bpp]
	}
}

func filterUp(bpp int, prev, current []byte) {
	for i := 0; i < len(current); i++ {
		current[i] -= prev[i]
	}
}

// filterAvg subtracts the truncated average of the left and upper bytes, per
// original_source/src/apng.rs's wrapping_add-then-halve form: the sum
// wraps mod 256 before dividing by 2, not widened to avoid the wrap.
func filterAvg(bpp int, prev, current []byte) {
	for i := len(current) - 1; i >= bpp; i-- {
		current[i] -= (current[i-bpp] + prev[i]) / 2
	}
	for i := 0; i < bpp && i < len(current); i++ {
		current[i] -= prev[i] / 2
	}
}

func filterPaeth(bpp int, prev, current []byte) {
	for i := len(current) - 1; i >= bpp; i-- {
		current[i] -= paethPredictor(current[i-bpp], prev[i], prev[i-bpp])
	}
	for i := 0; i < bpp && i < len(current); i++ {
		current[i] -= paethPredictor(0, prev[i], 0)
	}
}

// paethPredictor implements the Paeth predictor from PNG spec §6.6,
// breaking ties in order a, b, c.
func paethPredictor(a, b, c byte) byte {
	ia, ib, ic := int(a), int(b), int(c)
	p := ia + ib - ic
	pa := abs(p - ia)
	pb := abs(p - ib)
	pc := abs(p - ic)
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
