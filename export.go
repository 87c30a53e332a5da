package animated

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// secondsPerDay converts grid seconds into Julian days.
const secondsPerDay = 86400.0

// CgCatalog definition.
type CgCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Items   []*CgItems `json:"items"`
	Require []string   `json:"require,omitempty"`
}

func (c *CgCatalog) String() string {
	return c.Name + "(" + c.Version + ")"
}

// CgItems definition.
type CgItems struct {
	Class           string            `json:"class"`
	Name            string            `json:"name"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	Center          string            `json:"center"`
	TrajectoryFrame string            `json:"trajectoryFrame"`
	Trajectory      *CgTrajectory     `json:"trajectory,omitempty"`
	Geometry        *CgGeometry       `json:"geometry,omitempty"`
	Label           *CgLabel          `json:"label,omitempty"`
	TrajectoryPlot  *CgTrajectoryPlot `json:"trajectoryPlot,omitempty"`
}

// CgTrajectory definition.
type CgTrajectory struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// Validate validates a CgTrajectory.
func (t *CgTrajectory) Validate() error {
	if t.Type != "InterpolatedStates" || !strings.HasSuffix(t.Source, "xyzv") {
		return errors.New("only InterpolatedStates are currently supported in trajectory types")
	}
	return nil
}

func (t *CgTrajectory) String() string {
	return t.Source + " as " + t.Type
}

// CgGeometry definition.
type CgGeometry struct {
	Type   string    `json:"type,omitempty"`
	Mesh   []float64 `json:"meshRotation,omitempty"`
	Size   float64   `json:"size,omitempty"`
	Source string    `json:"source,omitempty"`
}

// CgLabel definition.
type CgLabel struct {
	Color    []float64 `json:"color,omitempty"`
	FadeSize int       `json:"fadeSize,omitempty"`
	ShowText bool      `json:"showText,omitempty"`
}

func (l *CgLabel) String() string {
	return fmt.Sprintf("color %v, fade %d, show %v", l.Color, l.FadeSize, l.ShowText)
}

// CgTrajectoryPlot definition.
type CgTrajectoryPlot struct {
	Color       []float64 `json:"color,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Lead        string    `json:"lead,omitempty"`
	Fade        int       `json:"fade,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// CgInterpolatedState definition.
type CgInterpolatedState struct {
	JD       float64
	Position []float64
	Velocity []float64
}

// FromText initializes from text.
// The `record` parameter must be an array of seven items.
func (i *CgInterpolatedState) FromText(record []string) {
	if val, err := strconv.ParseFloat(record[0], 64); err != nil {
		panic(err)
	} else {
		i.JD = val
	}

	if posX, err := strconv.ParseFloat(record[1], 64); err != nil {
		panic(err)
	} else if posY, err := strconv.ParseFloat(record[2], 64); err != nil {
		panic(err)
	} else if posZ, err := strconv.ParseFloat(record[3], 64); err != nil {
		panic(err)
	} else {
		i.Position = []float64{posX, posY, posZ}
	}

	if velX, err := strconv.ParseFloat(record[4], 64); err != nil {
		panic(err)
	} else if velY, err := strconv.ParseFloat(record[5], 64); err != nil {
		panic(err)
	} else if velZ, err := strconv.ParseFloat(record[6], 64); err != nil {
		panic(err)
	} else {
		i.Velocity = []float64{velX, velY, velZ}
	}
}

// ToText converts to text for written output.
func (i *CgInterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position[0], i.Position[1], i.Position[2], i.Velocity[0], i.Velocity[1], i.Velocity[2])
}

// ParseInterpolatedStates takes the content of a .xyzv stream and converts it
// into states. Comment and blank lines are skipped.
func ParseInterpolatedStates(s string) []*CgInterpolatedState {
	var states = []*CgInterpolatedState{}
	r := csv.NewReader(strings.NewReader(s))
	r.Comma = ' '
	r.Comment = '#'
	for {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			panic(err)
		}
		state := CgInterpolatedState{}
		state.FromText(record)
		states = append(states, &state)
	}

	return states
}

// ExportConfig configures the exporting of an animation.
type ExportConfig struct {
	Filename  string
	Epoch     time.Time // UTC instant of the first grid sample
	Timestamp bool      // stamp generated file names with the creation time
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// sourceName returns the .xyzv file name for one object in one frame.
func (c ExportConfig) sourceName(object string, frame RefFrame) string {
	if c.Timestamp {
		t := time.Now()
		return fmt.Sprintf("anim-%s-%s-%s-%d-%02d-%02dT%02d.%02d.%02d.xyzv", c.Filename, object, frame, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return fmt.Sprintf("anim-%s-%s-%s.xyzv", c.Filename, object, frame)
}

// ExportAnimation writes the gridded tensor for an external visualizer: one
// .xyzv sampled state file per object per active frame, plus a JSON catalog
// describing every item. Files land in the configured output directory.
func ExportAnimation(anim *Animation, c ExportConfig) error {
	if c.IsUseless() {
		return fmt.Errorf("export needs a file name: %w", ErrInvalidOption)
	}
	outDir := conf().OutputDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	jd0 := julian.TimeToJD(c.Epoch)
	span := anim.Time(anim.Frames()) - anim.Time(1)
	endTime := c.Epoch.Add(time.Duration(span * float64(time.Second)))
	frames := []RefFrame{FrameHill}
	if anim.HasInertial() {
		frames = append(frames, FrameInertial)
	}
	items := []*CgItems{}
	for _, frame := range frames {
		for obj, name := range anim.Objects() {
			base := c.sourceName(name, frame)
			f, err := os.Create(outDir + "/" + base)
			if err != nil {
				return err
			}
			f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Position in km
#   Velocity in km/sec
#   Animation epoch (UTC): %s`, time.Now(), c.Epoch.UTC()))
			for j := 1; j <= anim.Frames(); j++ {
				R, V := anim.StateAt(frame, obj, j)
				st := CgInterpolatedState{JD: jd0 + (anim.Time(j)-anim.Time(1))/secondsPerDay, Position: R, Velocity: V}
				if _, err := f.WriteString("\n" + st.ToText()); err != nil {
					f.Close()
					return err
				}
			}
			f.Close()
			center := "hill"
			trajFrame := "ICRF"
			if frame == FrameInertial {
				center = anim.Mode().Body().Name
				if anim.Mode() == CenterSun {
					trajFrame = "EclipticJ2000"
				}
			}
			color := []float64{0.6, 1, 1}
			items = append(items, &CgItems{
				Class:           "spacecraft",
				Name:            fmt.Sprintf("%s (%s)", name, frame),
				StartTime:       fmt.Sprintf("%s", c.Epoch.UTC()),
				EndTime:         fmt.Sprintf("%s", endTime.UTC()),
				Center:          center,
				TrajectoryFrame: trajFrame,
				Trajectory:      &CgTrajectory{Type: "InterpolatedStates", Source: base},
				Label:           &CgLabel{Color: color, FadeSize: 1000000, ShowText: true},
				TrajectoryPlot:  &CgTrajectoryPlot{Color: color, LineWidth: 1, Lead: "0 d", SampleCount: anim.Frames()},
			})
		}
	}
	cat := CgCatalog{Version: "1.0", Name: c.Filename, Items: items}
	fc, err := os.Create(fmt.Sprintf("%s/catalog-%s.json", outDir, c.Filename))
	if err != nil {
		return err
	}
	defer fc.Close()
	marsh, err := json.Marshal(cat)
	if err != nil {
		return err
	}
	_, err = fc.Write(marsh)
	return err
}
