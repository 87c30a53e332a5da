package animated

import (
	"testing"
)

func TestBuildAnimationGrid(t *testing.T) {
	// Irregular native sampling still yields the uniform unit grid.
	ts, err := LoadTrajectories([]RawObject{rampObject("chief", []float64{0, 2.5, 10})}, "", nil)
	if err != nil {
		t.Fatalf("load failed: %s", err)
	}
	anim := BuildAnimation(ts, Transform{})
	if anim.Frames() != 11 {
		t.Fatalf("expected 11 frames, got %d", anim.Frames())
	}
	if anim.Mode() != CenterHill {
		t.Fatalf("mode %s wrong", anim.Mode())
	}
	if anim.HasInertial() {
		t.Fatal("hill mode must not build the inertial frame")
	}
	if anim.Time(1) != 0 || anim.Time(11) != 10 {
		t.Fatalf("grid bounds wrong: [%f, %f]", anim.Time(1), anim.Time(11))
	}
	for j := 2; j <= 11; j++ {
		if anim.Time(j)-anim.Time(j-1) != 1 {
			t.Fatalf("grid spacing wrong at %d", j)
		}
	}
	names := anim.Objects()
	if len(names) != 1 || names[0] != "chief" {
		t.Fatalf("objects wrong: %+v", names)
	}
}

func TestFrameForTime(t *testing.T) {
	ts, err := LoadTrajectories([]RawObject{rampObject("chief", []float64{0, 2.5, 10})}, "", nil)
	if err != nil {
		t.Fatalf("load failed: %s", err)
	}
	anim := BuildAnimation(ts, Transform{})
	cases := []struct {
		time  float64
		frame int
	}{
		{0, 1},
		{3.2, 4},
		{3.6, 5},
		{10, 11},
		// Out of range times map out of range, for SetFrame to ignore.
		{-5, -4},
		{15, 16},
	}
	for _, c := range cases {
		if got := anim.FrameForTime(c.time); got != c.frame {
			t.Fatalf("t=%f: frame %d, expected %d", c.time, got, c.frame)
		}
	}
}

func TestStateAt(t *testing.T) {
	ts, err := LoadTrajectories([]RawObject{rampObject("chief", []float64{0, 5, 10})}, "", nil)
	if err != nil {
		t.Fatalf("load failed: %s", err)
	}
	anim := BuildAnimation(ts, Transform{})
	R, V := anim.StateAt(FrameHill, 0, 6)
	if !vectorsEqual(R, []float64{5, 10, 15}) || !vectorsEqual(V, []float64{20, 25, 30}) {
		t.Fatalf("frame 6 state wrong: R=%+v V=%+v", R, V)
	}
	// The returned slices are copies.
	R[0] = 999
	R2, _ := anim.StateAt(FrameHill, 0, 6)
	if R2[0] != 5 {
		t.Fatal("StateAt leaked its backing array")
	}
	assertPanic(t, func() {
		anim.StateAt(FrameInertial, 0, 1)
	})
	assertPanic(t, func() {
		anim.StateAt(FrameHill, 1, 1)
	})
	assertPanic(t, func() {
		anim.StateAt(FrameHill, 0, 0)
	})
	assertPanic(t, func() {
		anim.StateAt(FrameHill, 0, 12)
	})
}
