package animated

import (
	"fmt"
	"math"
	"os"

	"github.com/ChristopherRabotin/ode"
	kitlog "github.com/go-kit/kit/log"
)

// anomalySolver integrates dθ/dt = h/r(θ)² along the reference orbit,
// recording the anomaly after every step. It keeps its own clock instead of
// trusting the integrator's time argument.
type anomalySolver struct {
	e, h, p         float64
	θ               float64
	now, step, tEnd float64
	ts, θs          []float64
}

// GetState returns the latest anomaly for the integrator.
func (s *anomalySolver) GetState() []float64 {
	return []float64{s.θ}
}

// SetState records the anomaly at the end of a step. The clock was already
// advanced to that instant by Stop.
func (s *anomalySolver) SetState(t float64, state []float64) {
	s.θ = state[0]
	s.ts = append(s.ts, s.now)
	s.θs = append(s.θs, state[0])
}

// Stop advances the clock to the end of the upcoming step and ends the
// integration once the native span is fully bracketed.
func (s *anomalySolver) Stop(t float64) bool {
	s.now += s.step
	return s.now > s.tEnd
}

// Func is the integration function. The rate depends on the anomaly alone.
func (s *anomalySolver) Func(t float64, state []float64) []float64 {
	r := s.p / (1 + s.e*math.Cos(state[0]))
	return []float64{s.h / (r * r)}
}

// GenerateAnomaly integrates the true anomaly history over the given time
// vector, for input data which supplies the scalar elements but not the per
// sample θ and r arrays. ν0 is the initial true anomaly in degrees. The
// returned arrays are sampled on times, θ in radians.
func GenerateAnomaly(a, e, μ, ν0 float64, times []float64, logger kitlog.Logger) (θ, r []float64, err error) {
	if a <= 0 || μ <= 0 || e < 0 || e >= 1 {
		return nil, nil, fmt.Errorf("cannot integrate anomaly for a=%f e=%f μ=%f: %w", a, e, μ, ErrInvalidData)
	}
	if len(times) < 2 {
		return nil, nil, fmt.Errorf("anomaly generation needs at least two timestamps: %w", ErrInvalidData)
	}
	for k := 1; k < len(times); k++ {
		if times[k] <= times[k-1] {
			return nil, nil, fmt.Errorf("timestamps not strictly increasing at sample %d: %w", k, ErrInvalidTime)
		}
	}
	if logger == nil {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	}
	logger = kitlog.With(logger, "subsys", "astro")
	p := a * (1 - e*e)
	h := math.Sqrt(μ * p)
	t0 := times[0]
	t1 := times[len(times)-1]
	step := (t1 - t0) / float64(4*(len(times)-1))
	// Integrate two steps past t1 so the native grid is fully bracketed.
	solver := &anomalySolver{e: e, h: h, p: p, θ: Deg2rad(ν0), now: t0, step: step, tEnd: t1 + 2*step}
	solver.ts = append(solver.ts, t0)
	solver.θs = append(solver.θs, solver.θ)
	logger.Log("level", "info", "status", "integrating anomaly", "t0", t0, "t1", t1, "step", step)
	ode.NewRK4(t0, step, solver).Solve() // Blocking.
	θ = interp(times, solver.ts, solver.θs)
	r = make([]float64, len(θ))
	for k, θk := range θ {
		r[k] = p / (1 + e*math.Cos(θk))
	}
	logger.Log("level", "info", "status", "integrated anomaly", "steps", len(solver.ts), "θ0", θ[0], "θ1", θ[len(θ)-1])
	return θ, r, nil
}
