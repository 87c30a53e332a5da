package animated

import (
	"math"
	"testing"

	"github.com/gonum/matrix/mat64"
)

func TestR1R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r3 := R3(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r3.At(2, 2) || r3.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R3.At(2, 2) = 1\n")
	}
	// Test items equal to 0.
	if r1.At(0, 1) != r1.At(0, 2) || r1.At(1, 0) != r1.At(2, 0) || r1.At(0, 1) != 0 {
		t.Fatal("misplaced zeros in R1\n")
	}
	if r3.At(2, 0) != r3.At(2, 1) || r3.At(0, 2) != r3.At(1, 2) || r3.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R3\n")
	}
	// Test R1.
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced\n")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced\n")
	}
	// Test R3.
	if r3.At(1, 1) != r3.At(0, 0) || r3.At(0, 0) != c {
		t.Fatal("expected R3 cosines misplaced\n")
	}
	if r3.At(0, 1) != -r3.At(1, 0) || r3.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced\n")
	}
}

func TestPQW2ECIClosedForm(t *testing.T) {
	i := math.Pi / 17
	ω := math.Pi / 16
	Ω := math.Pi / 15
	var R1R3, full mat64.Dense
	R1R3.Mul(R1(-i), R3(-ω))
	full.Mul(R3(-Ω), &R1R3)
	if !mat64.EqualApprox(&full, PQW2ECI(i, ω, Ω), 1e-12) {
		t.Logf("\n%+v", mat64.Formatted(&full))
		t.Logf("\n%+v", mat64.Formatted(PQW2ECI(i, ω, Ω)))
		t.Fatal("failed")
	}
	// Without inclination the DCM collapses to one rotation about the
	// third axis by the sum of both in plane angles.
	if !mat64.EqualApprox(PQW2ECI(0, ω, Ω), R3(-(Ω+ω)), 1e-12) {
		t.Fatal("zero inclination DCM is not a plain third axis rotation")
	}
}

func TestPQW2ECI(t *testing.T) {
	i := Deg2rad(87.87)
	ω := Deg2rad(53.38)
	Ω := Deg2rad(227.89)
	Rp := MxV33(PQW2ECI(i, ω, Ω), []float64{-466.7639, 11447.0219, 0})
	Re := []float64{6525.368103709379, 6861.531814548294, 6449.118636407358}
	if !vectorsEqual(Re, Rp) {
		t.Fatal("R conversion failed")
	}
	Vp := MxV33(PQW2ECI(i, ω, Ω), []float64{-5.996222, 4.753601, 0})
	Ve := []float64{4.902278620687254, 5.533139558121602, -1.9757104281719946}
	if !vectorsEqual(Ve, Vp) {
		t.Fatal("V conversion failed")
	}
}
