package animated

import "fmt"

// stateChannels is the number of rows of a well formed state block.
const stateChannels = 6

// RawObject is one object's state history as supplied by the caller: six
// state channels (x, y, z, vx, vy, vz) sampled on the object's own time
// vector, in km and km/s.
type RawObject struct {
	Name  string
	State [][]float64
	Time  []float64
}

// trajObject is a validated, deep copied state history.
type trajObject struct {
	name  string
	state [stateChannels][]float64
	time  []float64
}

// TrajectorySet is the normalized, immutable collection of loaded objects
// with the requested frame mode and, for inertial modes, the reference orbit.
type TrajectorySet struct {
	mode    CenterMode
	objects []trajObject
	orbit   *OrbitParams
}

// LoadTrajectories validates the raw per-object histories and assembles the
// trajectory set. The mode keyword is one of "", "earth-centered" or
// "sun-centered"; the orbit parameters are required for the inertial modes.
// Any validation failure aborts the whole load, nothing partially loads.
func LoadTrajectories(objs []RawObject, modeKeyword string, orbit *OrbitParams) (*TrajectorySet, error) {
	if len(objs) == 0 {
		return nil, fmt.Errorf("no objects to animate: %w", ErrInvalidData)
	}
	for _, o := range objs {
		if len(o.State) < stateChannels {
			return nil, fmt.Errorf("object %s has %d state channels, needs all of x, y, z, vx, vy, vz: %w", o.Name, len(o.State), ErrMalformedState)
		}
		if len(o.State) > stateChannels {
			return nil, fmt.Errorf("object %s has %d state channels, expected exactly six: %w", o.Name, len(o.State), ErrMalformedState)
		}
		if len(o.Time) == 0 {
			return nil, fmt.Errorf("object %s has an empty state history: %w", o.Name, ErrInvalidData)
		}
		for c, channel := range o.State {
			if len(channel) != len(o.Time) {
				return nil, fmt.Errorf("object %s channel %d has %d samples for %d timestamps: %w", o.Name, c, len(channel), len(o.Time), ErrMalformedState)
			}
		}
	}
	mode, err := ParseCenterMode(modeKeyword)
	if err != nil {
		return nil, err
	}
	t0 := objs[0].Time[0]
	t1 := objs[0].Time[len(objs[0].Time)-1]
	for _, o := range objs[1:] {
		if o.Time[0] != t0 || o.Time[len(o.Time)-1] != t1 {
			return nil, fmt.Errorf("object %s spans [%f, %f] but object %s spans [%f, %f]: %w", o.Name, o.Time[0], o.Time[len(o.Time)-1], objs[0].Name, t0, t1, ErrTimeMismatch)
		}
	}
	for _, o := range objs {
		if o.Time[0] < 0 {
			return nil, fmt.Errorf("object %s starts at %f: %w", o.Name, o.Time[0], ErrInvalidTime)
		}
		for k := 1; k < len(o.Time); k++ {
			if o.Time[k] <= o.Time[k-1] {
				return nil, fmt.Errorf("object %s timestamps not strictly increasing at sample %d: %w", o.Name, k, ErrInvalidTime)
			}
		}
	}
	ts := &TrajectorySet{mode: mode, objects: make([]trajObject, len(objs))}
	for i, o := range objs {
		obj := trajObject{name: o.Name, time: append([]float64(nil), o.Time...)}
		for c := 0; c < stateChannels; c++ {
			obj.state[c] = append([]float64(nil), o.State[c]...)
		}
		ts.objects[i] = obj
	}
	if mode.Inertial() {
		if orbit == nil {
			return nil, fmt.Errorf("%s mode requested without orbit parameters: %w", mode, ErrInvalidData)
		}
		if len(orbit.θ) != len(ts.objects[0].time) {
			return nil, fmt.Errorf("orbit carries %d anomaly samples for %d timestamps: %w", len(orbit.θ), len(ts.objects[0].time), ErrMalformedState)
		}
		cp := *orbit
		cp.θ = append([]float64(nil), orbit.θ...)
		cp.r = append([]float64(nil), orbit.r...)
		ts.orbit = &cp
	}
	return ts, nil
}

// Len returns the number of objects.
func (ts *TrajectorySet) Len() int { return len(ts.objects) }

// Names returns the object names in load order.
func (ts *TrajectorySet) Names() []string {
	names := make([]string, len(ts.objects))
	for i, o := range ts.objects {
		names[i] = o.name
	}
	return names
}

// Mode returns the frame mode of this set.
func (ts *TrajectorySet) Mode() CenterMode { return ts.mode }

// Orbit returns the reference orbit, nil in Hill only mode.
func (ts *TrajectorySet) Orbit() *OrbitParams { return ts.orbit }

// Span returns the start and stop timestamps shared by all objects.
func (ts *TrajectorySet) Span() (t0, t1 float64) {
	t := ts.objects[0].time
	return t[0], t[len(t)-1]
}
