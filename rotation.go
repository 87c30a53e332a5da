package animated

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// PQW2ECI returns the direction cosine matrix from the perifocal frame to the
// inertial frame for the given inclination, argument of periapsis and right
// ascension of the ascending node, all in radians. This is the closed form of
// R3(-Ω)*R1(-i)*R3(-ω), from Schaub and Junkins.
func PQW2ECI(i, ω, Ω float64) *mat64.Dense {
	sω, cω := math.Sincos(ω)
	si, ci := math.Sincos(i)
	sΩ, cΩ := math.Sincos(Ω)
	return mat64.NewDense(3, 3, []float64{cΩ*cω - sΩ*sω*ci, -cΩ*sω - sΩ*cω*ci, sΩ * si,
		sΩ*cω + cΩ*sω*ci, -sΩ*sω + cΩ*cω*ci, -cΩ * si,
		sω * si, cω * si, ci})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}
