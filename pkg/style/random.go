package style

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/treesvg/pkg/errors"
)

// DefaultSizes is the size candidate set used when none is given (5..20).
var DefaultSizes = []float64{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Random samples one color and one size uniformly from the candidate sets.
// A nil or empty colors slice samples the whole named catalog, a nil or
// empty sizes slice samples [DefaultSizes].
func Random(rng *rand.Rand, colors []string, sizes []float64) (Style, error) {
	if len(colors) == 0 {
		colors = Names()
	}
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	c := colors[rng.IntN(len(colors))]
	sz := sizes[rng.IntN(len(sizes))]
	s, err := New(c, sz)
	if err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "random style from candidates")
	}
	return s, nil
}

// RandomRGB returns a color token sampled over the whole RGB spectrum.
func RandomRGB(rng *rand.Rand) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", rng.IntN(256), rng.IntN(256), rng.IntN(256))
}
