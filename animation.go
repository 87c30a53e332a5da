package animated

import (
	"fmt"
	"math"
)

// RefFrame selects which reference frame of an animation to read.
type RefFrame uint8

const (
	// FrameHill is the rotating local frame the input data is expressed in.
	FrameHill RefFrame = iota
	// FrameInertial is the non rotating frame anchored at the central body.
	FrameInertial
)

// String implements the Stringer interface.
func (f RefFrame) String() string {
	if f == FrameHill {
		return "hill"
	}
	return "inertial"
}

// sampled is one object's state history on the shared grid.
type sampled struct {
	name string
	ch   [stateChannels][]float64
}

// Animation is the read only tensor the render tick consumes: for each active
// reference frame and each object, six state channels over the shared grid.
// Built once, immutable thereafter.
type Animation struct {
	mode     CenterMode
	time     []float64
	hill     []sampled
	inertial []sampled
}

// BuildAnimation runs the geometry pipeline on a loaded set: grid derivation,
// per channel resampling and, for inertial modes, the frame transformation
// with loop closure on the inertial series only.
func BuildAnimation(ts *TrajectorySet, xf Transform) *Animation {
	t0, t1 := ts.Span()
	grid := timeGrid(t0, t1)
	anim := &Animation{mode: ts.mode, time: grid, hill: make([]sampled, len(ts.objects))}
	for i, o := range ts.objects {
		anim.hill[i] = resampleObject(o, grid)
	}
	if !ts.mode.Inertial() {
		return anim
	}
	θ := interp(grid, ts.objects[0].time, ts.orbit.θ)
	r := interp(grid, ts.objects[0].time, ts.orbit.r)
	anim.inertial = make([]sampled, len(ts.objects))
	for i := range anim.hill {
		s := xf.inertialize(anim.hill[i], ts.orbit, θ, r)
		closeLoop(&s.ch)
		anim.inertial[i] = s
	}
	return anim
}

// Frames returns F, the number of samples on the shared grid.
func (a *Animation) Frames() int { return len(a.time) }

// Mode returns the frame mode this animation was built with.
func (a *Animation) Mode() CenterMode { return a.mode }

// Time returns the timestamp of the given 1 based frame.
func (a *Animation) Time(j int) float64 { return a.time[j-1] }

// FrameForTime returns the 1 based grid index nearest to t. The result may
// lie outside [1, F] when t does, matching the no-op contract of SetFrame.
func (a *Animation) FrameForTime(t float64) int {
	return 1 + int(math.Round(t-a.time[0]))
}

// Objects returns the object names in load order.
func (a *Animation) Objects() []string {
	names := make([]string, len(a.hill))
	for i, o := range a.hill {
		names[i] = o.name
	}
	return names
}

// HasInertial returns whether the inertial frame was built.
func (a *Animation) HasInertial() bool { return a.inertial != nil }

// StateAt returns the position and velocity of object obj (load order) at
// the 1 based frame j, expressed in the requested reference frame. The
// returned slices are copies.
func (a *Animation) StateAt(frame RefFrame, obj, j int) (R, V []float64) {
	series := a.hill
	if frame == FrameInertial {
		if !a.HasInertial() {
			panic(fmt.Errorf("no inertial frame in %s mode", a.mode))
		}
		series = a.inertial
	}
	if obj < 0 || obj >= len(series) {
		panic(fmt.Errorf("no object %d among %d", obj, len(series)))
	}
	if j < 1 || j > len(a.time) {
		panic(fmt.Errorf("frame %d outside [1, %d]", j, len(a.time)))
	}
	s := series[obj]
	R = []float64{s.ch[0][j-1], s.ch[1][j-1], s.ch[2][j-1]}
	V = []float64{s.ch[3][j-1], s.ch[4][j-1], s.ch[5][j-1]}
	return
}
