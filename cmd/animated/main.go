package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"strings"
	"time"

	"github.com/luispaulomr/animated"
	"github.com/spf13/viper"
)

const (
	defaultScenario = "~~unset~~"
)

var (
	scenario string
	runFor   time.Duration
	export   bool
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "designated scenario TOML file")
	flag.DurationVar(&runFor, "duration", 10*time.Second, "how long to play before shutting down")
	flag.BoolVar(&export, "export", false, "export the sampled states instead of playing")
	flag.BoolVar(&verbose, "verbose", false, "log the playback state on every refresh")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	ts := loadSet()
	if mode := ts.Mode(); mode.Inertial() {
		log.Printf("[conf] centering on %s (texture %s)", mode.Body(), mode.Texture())
	} else {
		log.Printf("[conf] %s frame only", mode)
	}
	xf := animated.Transform{IncludeRelativeVelocity: viper.GetBool("transform.relativeVelocity")}

	if export {
		exportSet(ts, xf)
		return
	}

	s := animated.NewSession(ts, xf, nil)
	anim := s.Animation()
	player := s.Player()

	if viper.IsSet("playback.speed") {
		player.SetSpeed(viper.GetInt("playback.speed"))
	}
	if viper.IsSet("playback.loop") {
		player.SetLoop(viper.GetBool("playback.loop"))
	}
	if viper.GetBool("playback.paused") {
		player.Pause()
	}
	if out := viper.GetString("recording.output"); out != "" {
		player.SetOutput(out)
	}
	if q := viper.GetInt("recording.quality"); q != 0 {
		player.SetQuality(q)
	}
	if fps := viper.GetInt("recording.fps"); fps != 0 {
		player.SetFPS(fps)
	}

	frame := animated.FrameHill
	if anim.HasInertial() {
		frame = animated.FrameInertial
	}
	extent := plotExtent(anim, frame)
	player.SetFrameSource(func(j int) image.Image {
		return plotFrame(anim, frame, j, extent)
	})

	s.OnRefresh(func(snap animated.Snapshot) {
		if verbose {
			log.Printf("[play] frame %d/%d speed=%d paused=%v rec=%s written=%d", snap.Frame, anim.Frames(), snap.Speed, snap.Paused, snap.Recording, snap.FramesWritten)
		}
	})

	s.Start()
	if viper.IsSet("playback.seek") {
		s.SeekTime(viper.GetFloat64("playback.seek"))
	}
	if viper.GetBool("recording.enabled") {
		if err := player.StartRecording(); err != nil {
			log.Printf("[play] recording not started: %s", err)
		}
	}
	time.Sleep(runFor)
	if player.Recording() == animated.RecStarted {
		if err := player.StopRecording(); err != nil {
			log.Printf("[play] recording not stopped: %s", err)
		}
	}
	s.Close()
	log.Printf("[play] done on frame %d of %d", player.Frame(), anim.Frames())
}

// loadSet builds the trajectory set named by the scenario, either from a
// trajectory file or by sampling a two line element set.
func loadSet() *animated.TrajectorySet {
	if file := viper.GetString("trajectories.file"); file != "" {
		ts, err := animated.LoadTrajectoryFile(file, nil)
		if err != nil {
			log.Fatalf("could not load %s: %s", file, err)
		}
		return ts
	}
	name := viper.GetString("tle.name")
	line1 := viper.GetString("tle.line1")
	line2 := viper.GetString("tle.line2")
	if line1 == "" || line2 == "" {
		log.Fatal("scenario carries neither trajectories.file nor tle lines")
	}
	epoch := viper.GetTime("tle.epoch")
	duration := viper.GetDuration("tle.duration")
	step := viper.GetDuration("tle.step")
	obj, err := animated.TrajectoryFromTLE(name, line1, line2, epoch, duration, step)
	if err != nil {
		log.Fatalf("could not sample %s: %s", name, err)
	}
	bodyName := viper.GetString("tle.body")
	if bodyName == "" {
		bodyName = "earth"
	}
	body, err := animated.CelestialObjectFromString(bodyName)
	if err != nil {
		log.Fatalf("could not use `%s`: %s", bodyName, err)
	}
	if a, e, i, Ω, ω, ν, oerr := animated.OsculatingElements(obj, body); oerr != nil {
		log.Printf("[tle] %s: no osculating elements: %s", name, oerr)
	} else {
		log.Printf("[tle] %s about %s: a=%.1f km e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", name, body, a, e, i, Ω, ω, ν)
	}
	ts, err := animated.LoadTrajectories([]animated.RawObject{obj}, "", nil)
	if err != nil {
		log.Fatalf("could not assemble the sampled trajectory: %s", err)
	}
	return ts
}

// exportSet writes the resampled states and the viewer catalog instead of
// playing them back.
func exportSet(ts *animated.TrajectorySet, xf animated.Transform) {
	anim := animated.BuildAnimation(ts, xf)
	conf := animated.ExportConfig{
		Filename:  viper.GetString("export.name"),
		Epoch:     viper.GetTime("export.epoch"),
		Timestamp: viper.GetBool("export.timestamp"),
	}
	if conf.Filename == "" {
		conf.Filename = scenario
	}
	if conf.Epoch.IsZero() {
		conf.Epoch = time.Now().UTC()
	}
	if err := animated.ExportAnimation(anim, conf); err != nil {
		log.Fatalf("export failed: %s", err)
	}
	log.Printf("[export] %d objects over %d frames as %s", len(anim.Objects()), anim.Frames(), conf.Filename)
}

// plotExtent returns the largest coordinate magnitude over the whole tensor,
// used to fit every frame into the plot window.
func plotExtent(anim *animated.Animation, frame animated.RefFrame) float64 {
	extent := 1.0
	for obj := range anim.Objects() {
		for j := 1; j <= anim.Frames(); j++ {
			R, _ := anim.StateAt(frame, obj, j)
			for _, c := range R {
				if v := math.Abs(c); v > extent {
					extent = v
				}
			}
		}
	}
	return extent
}

// plotFrame renders the given frame as dots on the XY plane. This stands in
// for a real renderer so that recordings made from this binary hold actual
// motion.
func plotFrame(anim *animated.Animation, frame animated.RefFrame, j int, extent float64) image.Image {
	const width, height = 640, 480
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	for obj := range anim.Objects() {
		R, _ := anim.StateAt(frame, obj, j)
		x := width/2 + int(R[0]/extent*(width/2-10))
		y := height/2 - int(R[1]/extent*(height/2-10))
		for dx := -2; dx <= 2; dx++ {
			for dy := -2; dy <= 2; dy++ {
				if x+dx >= 0 && x+dx < width && y+dy >= 0 && y+dy < height {
					img.Set(x+dx, y+dy, color.White)
				}
			}
		}
	}
	return img
}
