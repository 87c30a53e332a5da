package animated

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// Transform configures the Hill to inertial conversion.
type Transform struct {
	// IncludeRelativeVelocity additionally rotates the Hill frame relative
	// velocity into the inertial frame. When unset, the inertial velocity is
	// the reference orbit velocity alone, a known approximation carried over
	// from full orbit visualization practice where the relative term is
	// orders of magnitude below the orbital term.
	IncludeRelativeVelocity bool
}

// inertialize converts one object's gridded Hill state into the inertial
// frame. θ and r are the reference orbit anomaly and radius already
// interpolated onto the grid.
func (x Transform) inertialize(hill sampled, orbit *OrbitParams, θ, r []float64) sampled {
	M := orbit.DCM()
	_, e, μ, _, _, _ := orbit.Elements()
	vCoef := μ / orbit.HNorm()
	out := sampled{name: hill.name}
	for c := range out.ch {
		out.ch[c] = make([]float64, len(θ))
	}
	for j := range θ {
		sθ, cθ := math.Sincos(θ[j])
		rp := []float64{r[j] * cθ, r[j] * sθ, 0}
		drp := []float64{-vCoef * sθ, vCoef * (e + cθ), 0}
		rin := MxV33(M, rp)
		drin := MxV33(M, drp)
		// Local orbital triad at this instant.
		oR := unit(rin)
		oH := unit(cross(rin, drin))
		oT := cross(oH, oR)
		// ON carries the triad as rows, so its transpose carries it as
		// columns and maps Hill coordinates back into the inertial frame.
		ont := mat64.NewDense(3, 3, []float64{
			oR[0], oT[0], oH[0],
			oR[1], oT[1], oH[1],
			oR[2], oT[2], oH[2],
		})
		rel := MxV33(ont, []float64{hill.ch[0][j], hill.ch[1][j], hill.ch[2][j]})
		vel := drin
		if x.IncludeRelativeVelocity {
			drel := MxV33(ont, []float64{hill.ch[3][j], hill.ch[4][j], hill.ch[5][j]})
			vel = []float64{drin[0] + drel[0], drin[1] + drel[1], drin[2] + drel[2]}
		}
		for c := 0; c < 3; c++ {
			out.ch[c][j] = rin[c] + rel[c]
			out.ch[c+3][j] = vel[c]
		}
	}
	return out
}
