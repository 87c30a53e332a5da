package animated

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// OrbitParams defines the reference orbit anchoring the Hill frame, via its
// classical orbital elements and the per-sample true anomaly and orbital
// radius histories. Fixed for the whole session once loaded.
type OrbitParams struct {
	a, e, μ float64
	i, ω, Ω float64
	θ, r    []float64
}

// NewOrbitParams creates the reference orbit from the scalar elements and the
// anomaly/radius histories.
// WARNING: i, ω and Ω must be in degrees not radians. θ must be in radians.
func NewOrbitParams(a, e, μ, i, ω, Ω float64, θ, r []float64) (*OrbitParams, error) {
	if a <= 0 {
		return nil, fmt.Errorf("semi-major axis %f km: %w", a, ErrInvalidData)
	}
	if e < 0 || e >= 1 {
		return nil, fmt.Errorf("eccentricity %f not in [0,1): %w", e, ErrInvalidData)
	}
	if μ <= 0 {
		return nil, fmt.Errorf("gravitational parameter %f: %w", μ, ErrInvalidData)
	}
	if len(θ) != len(r) {
		return nil, fmt.Errorf("anomaly has %d samples but radius has %d: %w", len(θ), len(r), ErrMalformedState)
	}
	return &OrbitParams{a, e, μ, Deg2rad(i), Deg2rad(ω), Deg2rad(Ω), θ, r}, nil
}

// Elements returns the scalar orbital elements, angles in radians.
func (o OrbitParams) Elements() (a, e, μ, i, ω, Ω float64) {
	return o.a, o.e, o.μ, o.i, o.ω, o.Ω
}

// Anomaly returns the true anomaly history in radians.
func (o OrbitParams) Anomaly() []float64 { return o.θ }

// Radius returns the orbital radius history.
func (o OrbitParams) Radius() []float64 { return o.r }

// SemiParameter returns the semi-parameter.
func (o OrbitParams) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// HNorm returns the norm of the orbital angular momentum.
func (o OrbitParams) HNorm() float64 {
	return math.Sqrt(o.μ * o.a * (1 - o.e*o.e))
}

// DCM returns the direction cosine matrix rotating perifocal coordinates into
// the inertial frame. The matrix is fixed for the whole session.
func (o OrbitParams) DCM() *mat64.Dense {
	return PQW2ECI(o.i, o.ω, o.Ω)
}

// String implements the Stringer interface.
func (o OrbitParams) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω))
}

// COEFromRV returns the classical orbital elements of the provided inertial
// position and velocity vectors. From Vallado's RV2COE, page 113.
// All angles are returned in radians.
func COEFromRV(R, V []float64, μ float64) (a, e, i, Ω, ω, ν float64) {
	hVec := cross(R, V)
	n := cross([]float64{0, 0, 1}, hVec)
	v := norm(V)
	r := norm(R)
	ξ := (v*v)/2 - μ/r
	a = -μ / (2 * ξ)
	eVec := make([]float64, 3)
	for k := 0; k < 3; k++ {
		eVec[k] = ((v*v-μ/r)*R[k] - dot(R, V)*V[k]) / μ
	}
	e = norm(eVec)
	i = math.Acos(hVec[2] / norm(hVec))
	ω = math.Acos(dot(n, eVec) / (norm(n) * e))
	if math.IsNaN(ω) {
		ω = 0
	}
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	Ω = math.Acos(n[0] / norm(n))
	if n[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	cosν := dot(eVec, R) / (e * r)
	if abscosν := math.Abs(cosν); abscosν > 1 && floats.EqualWithinAbs(abscosν, 1, 1e-12) {
		// Fix the rounding error which pushes |cosν| just above one.
		cosν = sign(cosν)
	}
	ν = math.Acos(cosν)
	if dot(R, V) < 0 {
		ν = 2*math.Pi - ν
	}
	i = math.Mod(i, 2*math.Pi)
	Ω = math.Mod(Ω, 2*math.Pi)
	ω = math.Mod(ω, 2*math.Pi)
	ν = math.Mod(ν, 2*math.Pi)
	return
}
