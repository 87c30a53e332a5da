package animated

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// Internal JSON shapes. Unexported so the on-disk format is free to evolve.
type trajectoryFileJSON struct {
	Center  string           `json:"center"`
	Objects []trajObjectJSON `json:"objects"`
	Orbit   *orbitParamsJSON `json:"orbit"`
}

type trajObjectJSON struct {
	Name  string      `json:"name"`
	State [][]float64 `json:"state"` // six rows: x, y, z, vx, vy, vz
	Time  []float64   `json:"time"`
}

type orbitParamsJSON struct {
	A      float64   `json:"a"`
	E      float64   `json:"e"`
	Mu     float64   `json:"mu"`
	I      float64   `json:"i"`     // degrees
	Omega  float64   `json:"omega"` // argument of periapsis, degrees
	RAAN   float64   `json:"raan"`  // degrees
	Nu0    float64   `json:"nu0"`   // initial true anomaly, degrees
	Theta  []float64 `json:"theta"` // radians, optional
	Radius []float64 `json:"radius"`
}

// ReadTrajectories decodes a trajectory stream and runs the full load
// validation. When the orbit section carries the scalar elements but no per
// sample θ and radius arrays, the anomaly history is generated from nu0 on
// object 1's time vector.
func ReadTrajectories(r io.Reader, logger kitlog.Logger) (*TrajectorySet, error) {
	var payload trajectoryFileJSON
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("trajectory decode failed: %w", err)
	}
	objs := make([]RawObject, len(payload.Objects))
	for i, o := range payload.Objects {
		objs[i] = RawObject{Name: o.Name, State: o.State, Time: o.Time}
	}
	var orbit *OrbitParams
	if payload.Orbit != nil {
		po := payload.Orbit
		θ, rad := po.Theta, po.Radius
		if len(θ) == 0 && len(objs) > 0 && len(objs[0].Time) > 1 {
			var err error
			θ, rad, err = GenerateAnomaly(po.A, po.E, po.Mu, po.Nu0, objs[0].Time, logger)
			if err != nil {
				return nil, err
			}
		}
		var err error
		orbit, err = NewOrbitParams(po.A, po.E, po.Mu, po.I, po.Omega, po.RAAN, θ, rad)
		if err != nil {
			return nil, err
		}
	}
	return LoadTrajectories(objs, payload.Center, orbit)
}

// LoadTrajectoryFile reads a trajectory JSON file from disk.
func LoadTrajectoryFile(path string, logger kitlog.Logger) (*TrajectorySet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrajectories(f, logger)
}
