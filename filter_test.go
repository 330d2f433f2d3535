package apng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unapplyFilter reverses applyFilter in place, used to assert the
// round-trip property (spec.md §8 property 5).
func unapplyFilter(method FilterType, bpp int, prev, current []byte) {
	switch method {
	case FilterNone:
	case FilterSub:
		for i := bpp; i < len(current); i++ {
			current[i] += current[i-bpp]
		}
	case FilterUp:
		for i := 0; i < len(current); i++ {
			current[i] += prev[i]
		}
	case FilterAvg:
		for i := 0; i < bpp && i < len(current); i++ {
			current[i] += prev[i] / 2
		}
		for i := bpp; i < len(current); i++ {
			current[i] += (current[i-bpp] + prev[i]) / 2
		}
	case FilterPaeth:
		for i := 0; i < bpp && i < len(current); i++ {
			current[i] += paethPredictor(0, prev[i], 0)
		}
		for i := bpp; i < len(current); i++ {
			current[i] += paethPredictor(current[i-bpp], prev[i], prev[i-bpp])
		}
	}
}

func TestFilterRoundTrip(t *testing.T) {
	methods := []FilterType{FilterNone, FilterSub, FilterUp, FilterAvg, FilterPaeth}
	bpps := []int{1, 3, 4}

	for _, method := range methods {
		for _, bpp := range bpps {
			prev := []byte{10, 20, 30, 40, 12, 22, 28, 44}[:bpp*2]
			original := []byte{15, 20, 30, 40, 16, 26, 31, 41}[:bpp*2]

			current := append([]byte(nil), original...)
			applyFilter(method, bpp, prev, current)
			unapplyFilter(method, bpp, prev, current)

			assert.Equalf(t, original, current, "method=%d bpp=%d did not round-trip", method, bpp)
		}
	}
}

// TestFilterPaethScenario reproduces spec.md §8 scenario S3: three rows of
// 1-pixel RGBA (bpp=4), Paeth-filtered against each other in sequence.
func TestFilterPaethScenario(t *testing.T) {
	rowA := []byte{10, 20, 30, 40}
	rowB := []byte{12, 22, 28, 40}
	rowC := []byte{15, 20, 30, 40}

	zero := []byte{0, 0, 0, 0}

	filteredA := append([]byte(nil), rowA...)
	applyFilter(FilterPaeth, 4, zero, filteredA)
	for i, v := range filteredA {
		require.Equal(t, rowA[i]-paethPredictor(0, 0, 0), v)
	}

	// Row B filtered against the original (reconstructed) row A.
	filteredB := append([]byte(nil), rowB...)
	applyFilter(FilterPaeth, 4, rowA, filteredB)
	for i, v := range filteredB {
		require.Equal(t, rowB[i]-paethPredictor(0, rowA[i], 0), v)
	}

	// Row C filtered against row B.
	filteredC := append([]byte(nil), rowC...)
	applyFilter(FilterPaeth, 4, rowB, filteredC)
	for i, v := range filteredC {
		require.Equal(t, rowC[i]-paethPredictor(0, rowB[i], 0), v)
	}
}

func TestPaethPredictorTieBreak(t *testing.T) {
	// p = a when a == b == c: pa == pb == pc == 0, ties broken toward a.
	assert.Equal(t, byte(5), paethPredictor(5, 5, 5))
}
