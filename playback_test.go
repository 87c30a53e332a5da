package animated

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testFrameSource(frame int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, 16, 16))
}

func TestPlayerDefaults(t *testing.T) {
	assertPanic(t, func() {
		NewPlayer(0, nil)
	})
	p := NewPlayer(10, nil)
	snap := p.Snapshot()
	if snap.Frame != 1 || snap.Paused || !snap.Loop || snap.Speed != 1 {
		t.Fatalf("playback defaults wrong: %+v", snap)
	}
	if snap.Recording != RecIdle || snap.ConfigLocked || snap.FramesWritten != 0 {
		t.Fatalf("recording defaults wrong: %+v", snap)
	}
	if snap.Output != "animation.avi" || snap.Quality != 75 || snap.FPS != 20 {
		t.Fatalf("output defaults wrong: %+v", snap)
	}
	if !p.Stopped() {
		t.Fatal("a new player must not be ticking")
	}
	if RecIdle.String() != "idle" || RecStarted.String() != "started" || RecEnded.String() != "ended" {
		t.Fatal("recording state names wrong")
	}
}

func TestAdvanceWrap(t *testing.T) {
	p := NewPlayer(10, nil)
	for k := 0; k < 9; k++ {
		p.Advance()
	}
	if p.Frame() != 10 {
		t.Fatalf("expected frame 10, got %d", p.Frame())
	}
	p.Advance()
	if p.Frame() != 1 {
		t.Fatalf("loop on: expected wrap to 1, got %d", p.Frame())
	}
	// A faster multiplier overshooting the end also restarts at 1.
	p.SetSpeed(2)
	p.SetFrame(8)
	p.Advance()
	if p.Frame() != 1 {
		t.Fatalf("overshoot: expected wrap to 1, got %d", p.Frame())
	}
}

func TestAdvanceClamp(t *testing.T) {
	p := NewPlayer(10, nil)
	p.SetLoop(false)
	p.SetFrame(9)
	p.Advance()
	if p.Frame() != 10 || p.Paused() {
		t.Fatalf("frame %d paused %v after reaching the end", p.Frame(), p.Paused())
	}
	p.Advance()
	if p.Frame() != 10 || !p.Paused() {
		t.Fatalf("loop off: expected clamp and pause, got frame %d paused %v", p.Frame(), p.Paused())
	}
	// Paused advances do not move the cursor.
	p.Advance()
	if p.Frame() != 10 {
		t.Fatalf("paused advance moved to %d", p.Frame())
	}
	p.Unpause()
	p.Advance()
	if p.Frame() != 10 || !p.Paused() {
		t.Fatal("the clamp must reapply after unpausing at the end")
	}
}

func TestStepWrap(t *testing.T) {
	p := NewPlayer(10, nil)
	p.SetFrame(10)
	p.StepForward()
	// Two times the multiplier, wrapped by the excess.
	if p.Frame() != 3 {
		t.Fatalf("expected frame 3, got %d", p.Frame())
	}
	p.StepBackward()
	if p.Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", p.Frame())
	}
	p.StepBackward()
	if p.Frame() != 9 {
		t.Fatalf("expected backward wrap to 9, got %d", p.Frame())
	}
	// An excess larger than a full span clamps instead of wrapping again.
	p.SetSpeed(4)
	p.SetFrame(5)
	p.StepForward()
	if p.Frame() != 10 {
		t.Fatalf("expected clamp to 10, got %d", p.Frame())
	}
	p.StepBackward()
	if p.Frame() != 1 {
		t.Fatalf("expected clamp to 1, got %d", p.Frame())
	}
}

func TestStepClamp(t *testing.T) {
	p := NewPlayer(10, nil)
	p.SetLoop(false)
	p.SetFrame(10)
	p.StepForward()
	if p.Frame() != 10 || !p.Paused() {
		t.Fatalf("loop off: expected clamp and pause, got frame %d paused %v", p.Frame(), p.Paused())
	}
	p.Unpause()
	p.SetFrame(1)
	p.StepBackward()
	if p.Frame() != 1 || !p.Paused() {
		t.Fatalf("loop off: expected clamp and pause, got frame %d paused %v", p.Frame(), p.Paused())
	}
}

func TestSetFrame(t *testing.T) {
	p := NewPlayer(10, nil)
	p.SetFrame(7)
	if p.Frame() != 7 {
		t.Fatalf("expected frame 7, got %d", p.Frame())
	}
	p.SetFrame(0)
	p.SetFrame(11)
	p.SetFrame(-3)
	if p.Frame() != 7 {
		t.Fatalf("out of range jumps moved the cursor to %d", p.Frame())
	}
}

func TestSpeedTable(t *testing.T) {
	p := NewPlayer(10, nil)
	expected := []int{1, 5, 10, 15, 50, 100, 200}
	for idx, mult := range expected {
		p.SetSpeed(idx)
		if p.Speed() != mult {
			t.Fatalf("position %d: speed %d, expected %d", idx, p.Speed(), mult)
		}
	}
	p.SetSpeed(len(expected))
	p.SetSpeed(-1)
	if p.Speed() != expected[len(expected)-1] {
		t.Fatal("out of range positions must be ignored")
	}
	for k := 0; k < 10; k++ {
		p.SpeedUp()
	}
	if p.Speed() != 200 {
		t.Fatalf("SpeedUp must clamp at 200, got %d", p.Speed())
	}
	for k := 0; k < 10; k++ {
		p.SpeedDown()
	}
	if p.Speed() != 1 {
		t.Fatalf("SpeedDown must clamp at 1, got %d", p.Speed())
	}
}

func TestScrub(t *testing.T) {
	p := NewPlayer(10, nil)
	p.ScrubBegin()
	if !p.Paused() {
		t.Fatal("scrubbing must pause")
	}
	// Reentrant: a second begin does not overwrite the captured flag.
	p.ScrubBegin()
	p.SetFrame(5)
	p.ScrubEnd()
	if p.Paused() {
		t.Fatal("the unpaused flag was not restored")
	}
	if p.Frame() != 5 {
		t.Fatalf("scrub jump lost, frame %d", p.Frame())
	}
	p.Pause()
	p.ScrubBegin()
	p.ScrubEnd()
	if !p.Paused() {
		t.Fatal("the paused flag was not restored")
	}
	// Without a begin, end is a no-op.
	p.Unpause()
	p.ScrubEnd()
	if p.Paused() {
		t.Fatal("a dangling ScrubEnd changed the flag")
	}
}

func TestPauseRestart(t *testing.T) {
	p := NewPlayer(10, nil)
	p.TogglePause()
	if !p.Paused() {
		t.Fatal("toggle did not pause")
	}
	p.TogglePause()
	if p.Paused() {
		t.Fatal("toggle did not unpause")
	}
	p.SetFrame(8)
	p.Pause()
	p.Restart()
	if p.Frame() != 1 || !p.Paused() {
		t.Fatalf("restart gave frame %d paused %v", p.Frame(), p.Paused())
	}
	p.ToggleLoop()
	if snap := p.Snapshot(); snap.Loop {
		t.Fatal("toggle did not disable looping")
	}
}

func TestConfigSetters(t *testing.T) {
	p := NewPlayer(10, nil)
	p.SetOutput("spacecraft.avi")
	p.SetQuality(90)
	p.SetFPS(60)
	snap := p.Snapshot()
	if snap.Output != "spacecraft.avi" || snap.Quality != 90 || snap.FPS != 60 {
		t.Fatalf("setters did not apply: %+v", snap)
	}
	p.SetOutput("")
	p.SetOutput(strings.Repeat("x", 65))
	p.SetQuality(0)
	p.SetQuality(101)
	p.SetFPS(0)
	p.SetFPS(121)
	snap = p.Snapshot()
	if snap.Output != "spacecraft.avi" || snap.Quality != 90 || snap.FPS != 60 {
		t.Fatalf("invalid values were not ignored: %+v", snap)
	}
}

func TestRecordingLifecycle(t *testing.T) {
	p := NewPlayer(10, nil)
	p.output = filepath.Join(t.TempDir(), "rec.avi")
	p.SetFrameSource(testFrameSource)
	if err := p.StopRecording(); !errors.Is(err, ErrOutputMissing) {
		t.Fatalf("stop without start: expected ErrOutputMissing, got %s", err)
	}
	if err := p.StartRecording(); err != nil {
		t.Fatalf("start failed: %s", err)
	}
	if p.Recording() != RecStarted {
		t.Fatalf("expected started, got %s", p.Recording())
	}
	// The recording configuration is locked while started.
	p.SetQuality(30)
	p.SetFPS(30)
	p.SetOutput("elsewhere.avi")
	snap := p.Snapshot()
	if !snap.ConfigLocked || snap.Quality != 75 || snap.FPS != 20 || snap.Output != p.output {
		t.Fatalf("configuration changed while locked: %+v", snap)
	}
	for k := 0; k < 5; k++ {
		p.Advance()
	}
	if got := p.Snapshot().FramesWritten; got != 5 {
		t.Fatalf("expected 5 written frames, got %d", got)
	}
	// A paused advance still records the still frame.
	p.Pause()
	p.Advance()
	if got := p.Snapshot().FramesWritten; got != 6 {
		t.Fatalf("paused advance did not record, got %d", got)
	}
	p.Unpause()
	if err := p.StartRecording(); !errors.Is(err, ErrOutputExists) {
		t.Fatalf("double start: expected ErrOutputExists, got %s", err)
	}
	if err := p.StopRecording(); err != nil {
		t.Fatalf("stop failed: %s", err)
	}
	if p.Recording() != RecEnded {
		t.Fatalf("expected ended, got %s", p.Recording())
	}
	if _, err := os.Stat(p.output); err != nil {
		t.Fatalf("no container on disk: %s", err)
	}
	// Stopping unlocks the configuration before the handle is dropped.
	p.SetQuality(30)
	if snap := p.Snapshot(); snap.ConfigLocked || snap.Quality != 30 {
		t.Fatalf("configuration still locked after stop: %+v", snap)
	}
	p.Advance()
	if p.Recording() != RecIdle {
		t.Fatalf("handle not dropped, state %s", p.Recording())
	}
	// The system never overwrites a finished recording.
	if err := p.StartRecording(); !errors.Is(err, ErrOutputExists) {
		t.Fatalf("overwrite: expected ErrOutputExists, got %s", err)
	}
	if p.Recording() != RecIdle {
		t.Fatalf("failed start left state %s", p.Recording())
	}
}

func TestRecordingWithoutSource(t *testing.T) {
	p := NewPlayer(10, nil)
	p.output = filepath.Join(t.TempDir(), "empty.avi")
	if err := p.StartRecording(); err != nil {
		t.Fatalf("start failed: %s", err)
	}
	p.Advance()
	p.Advance()
	if got := p.Snapshot().FramesWritten; got != 0 {
		t.Fatalf("wrote %d frames without a source", got)
	}
	if err := p.StopRecording(); err != nil {
		t.Fatalf("stop failed: %s", err)
	}
	// The container still materializes, just empty.
	if _, err := os.Stat(p.output); err != nil {
		t.Fatalf("no container on disk: %s", err)
	}
}

func TestStartStop(t *testing.T) {
	p := NewPlayer(1 << 30, nil)
	p.Start()
	p.Start() // no-op while running
	if p.Stopped() {
		t.Fatal("player did not start")
	}
	time.Sleep(350 * time.Millisecond)
	p.Stop()
	if !p.Stopped() {
		t.Fatal("player did not stop")
	}
	f := p.Frame()
	if f < 2 {
		t.Fatalf("the advance tick never fired, frame %d", f)
	}
	time.Sleep(250 * time.Millisecond)
	if p.Frame() != f {
		t.Fatalf("frame moved from %d to %d after Stop", f, p.Frame())
	}
	p.Stop() // no-op while stopped
	p.Start()
	time.Sleep(250 * time.Millisecond)
	p.Stop()
	if p.Frame() == f {
		t.Fatal("the tick did not resume after a restart")
	}
}
