package animated

import (
	"fmt"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// TrajectoryFromTLE samples an SGP4 propagated satellite into a raw object
// the loader can animate in Hill only mode: positions and velocities in the
// TEME frame, km and km/s, timestamps in seconds from the given epoch.
func TrajectoryFromTLE(name, line1, line2 string, epoch time.Time, duration, step time.Duration) (RawObject, error) {
	if duration <= 0 || step <= 0 || step > duration {
		return RawObject{}, fmt.Errorf("cannot sample %s for %s every %s: %w", name, duration, step, ErrInvalidOption)
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	n := 1 + int(duration/step)
	obj := RawObject{Name: name, State: make([][]float64, stateChannels), Time: make([]float64, n)}
	for c := range obj.State {
		obj.State[c] = make([]float64, n)
	}
	for k := 0; k < n; k++ {
		dt := epoch.Add(time.Duration(k) * step)
		year, month, day := dt.Date()
		hour, min, sec := dt.Clock()
		pos, vel := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
		obj.State[0][k] = pos.X
		obj.State[1][k] = pos.Y
		obj.State[2][k] = pos.Z
		obj.State[3][k] = vel.X
		obj.State[4][k] = vel.Y
		obj.State[5][k] = vel.Z
		obj.Time[k] = dt.Sub(epoch).Seconds()
	}
	return obj, nil
}

// OsculatingElements returns the instantaneous orbital elements at the first
// sample of a raw object about the given body. Angles in degrees.
func OsculatingElements(obj RawObject, body CelestialObject) (a, e, i, Ω, ω, ν float64, err error) {
	if len(obj.State) != stateChannels || len(obj.Time) == 0 {
		return 0, 0, 0, 0, 0, 0, fmt.Errorf("object %s has no usable state: %w", obj.Name, ErrMalformedState)
	}
	R := []float64{obj.State[0][0], obj.State[1][0], obj.State[2][0]}
	V := []float64{obj.State[3][0], obj.State[4][0], obj.State[5][0]}
	a, e, i, Ω, ω, ν = COEFromRV(R, V, body.GM())
	return a, e, Rad2deg(i), Rad2deg(Ω), Rad2deg(ω), Rad2deg(ν), nil
}
