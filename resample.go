package animated

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonum/floats"
)

// timeGrid returns the shared uniform sampling grid: one sample per time unit
// between the rounded span bounds. Rounding guarantees an integer spaced grid
// even when the native timestamps are irregular.
func timeGrid(t0, t1 float64) []float64 {
	start := math.Round(t0)
	stop := math.Round(t1)
	grid := make([]float64, 1+int(math.Round(stop-start)))
	for j := range grid {
		grid[j] = start + float64(j)
	}
	return grid
}

// interp linearly interpolates the samples (xs, ys) at every query point of
// xq. xs must be strictly increasing. Queries are clamped to the observed
// range: the rounded grid bounds sit at most half a unit outside of it, and
// anything further out is a programming error.
func interp(xq, xs, ys []float64) []float64 {
	out := make([]float64, len(xq))
	last := len(xs) - 1
	for j, q := range xq {
		switch {
		case q <= xs[0]:
			if !floats.EqualWithinAbs(q, xs[0], 0.5) {
				panic(fmt.Errorf("query %f more than half a unit before the observed range start %f", q, xs[0]))
			}
			out[j] = ys[0]
		case q >= xs[last]:
			if !floats.EqualWithinAbs(q, xs[last], 0.5) {
				panic(fmt.Errorf("query %f more than half a unit after the observed range stop %f", q, xs[last]))
			}
			out[j] = ys[last]
		default:
			k := sort.SearchFloat64s(xs, q)
			w := (q - xs[k-1]) / (xs[k] - xs[k-1])
			out[j] = ys[k-1] + w*(ys[k]-ys[k-1])
		}
	}
	return out
}

// resampleObject interpolates all six channels of an object onto the grid.
func resampleObject(o trajObject, grid []float64) sampled {
	s := sampled{name: o.name}
	for c := 0; c < stateChannels; c++ {
		s.ch[c] = interp(grid, o.time, o.state[c])
	}
	return s
}

// closeLoop forces the final sample of every channel equal to its first, so
// that a full orbit animation closes on itself.
func closeLoop(state *[stateChannels][]float64) {
	for c := range state {
		if n := len(state[c]); n > 1 {
			state[c][n-1] = state[c][0]
		}
	}
}
