package animated

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// speedTable is the fixed ordered set of allowed playback multipliers.
var speedTable = []int{1, 5, 10, 15, 50, 100, 200}

const maxOutputLen = 64

// RecState is the recording sub-state of a Player.
type RecState uint8

const (
	// RecIdle means no recording is underway.
	RecIdle RecState = iota
	// RecStarted means the sink is open and frames are written on every
	// advance.
	RecStarted
	// RecEnded means the container is finalized and the handle will be
	// released on the next advance.
	RecEnded
)

// String implements the Stringer interface.
func (s RecState) String() string {
	switch s {
	case RecIdle:
		return "idle"
	case RecStarted:
		return "started"
	default:
		return "ended"
	}
}

// FrameSource renders the frame at the given 1 based index. It is called on
// the advance tick while a recording is started, with the player lock held,
// so it must not call back into the player.
type FrameSource func(frame int) image.Image

// Snapshot is the read surface the refresh tick polls to update on-screen
// values.
type Snapshot struct {
	Frame         int
	Paused        bool
	Loop          bool
	Speed         int
	Recording     RecState
	ConfigLocked  bool
	FramesWritten int
	Output        string
	Quality       int
	FPS           int
}

// Player is the playback state machine: it owns the current frame index, the
// speed, pause and loop flags and the recording lifecycle, and drives frame
// advancement on its own periodic tick. Every operation serializes on one
// mutex so ticks and UI commands may arrive from any goroutine.
type Player struct {
	mu        sync.Mutex
	numFrames int
	frame     int
	paused    bool
	loop      bool
	speedIdx  int
	scrubWas  *bool
	stopped   bool
	tick      time.Duration
	ticker    *time.Ticker
	done      chan struct{}

	rec      RecState
	output   string
	quality  int
	fps      int
	written  int
	sink     *videoSink
	frameSrc FrameSource

	logger kitlog.Logger
}

// NewPlayer creates a player over numFrames frames: cursor on frame 1,
// playing, looping, slowest multiplier, recording idle. A nil logger selects
// the default logfmt logger on stdout.
func NewPlayer(numFrames int, logger kitlog.Logger) *Player {
	if numFrames < 1 {
		panic(fmt.Errorf("cannot play %d frames", numFrames))
	}
	if logger == nil {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	}
	return &Player{
		numFrames: numFrames,
		frame:     1,
		loop:      true,
		stopped:   true,
		tick:      conf().Tick,
		output:    "animation.avi",
		quality:   75,
		fps:       20,
		logger:    kitlog.With(logger, "subsys", "playback"),
	}
}

// Start launches the advance tick. It is a no-op while already running.
func (p *Player) Start() {
	p.mu.Lock()
	if !p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = false
	p.ticker = time.NewTicker(p.tick)
	p.done = make(chan struct{})
	ticker, done := p.ticker, p.done
	p.mu.Unlock()
	go p.run(ticker, done)
	p.logger.Log("level", "info", "status", "started", "frames", p.numFrames, "tick", p.tick)
}

// Stop halts the advance tick. The stopped flag is visible to pollers before
// the underlying ticker halts.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	ticker, done := p.ticker, p.done
	p.ticker, p.done = nil, nil
	p.mu.Unlock()
	close(done)
	ticker.Stop()
	p.logger.Log("level", "info", "status", "stopped")
}

func (p *Player) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p.mu.Lock()
			if !p.stopped {
				p.advance()
			}
			p.mu.Unlock()
		}
	}
}

// Advance moves the cursor one playback step and services the recording
// sub-state. It normally fires on the advance tick, and may be driven
// manually when the player is not started.
func (p *Player) Advance() {
	p.mu.Lock()
	p.advance()
	p.mu.Unlock()
}

func (p *Player) advance() {
	if !p.paused {
		p.frame += speedTable[p.speedIdx]
		if p.frame > p.numFrames {
			if p.loop {
				p.frame = 1
			} else {
				p.frame = p.numFrames
				p.paused = true
			}
		}
	}
	switch p.rec {
	case RecStarted:
		p.writeFrame()
	case RecEnded:
		p.sink = nil
		p.rec = RecIdle
	}
}

// writeFrame grabs the rendered frame and writes it to the sink, with the
// mutex held. A sink failure is terminal for this recording only.
func (p *Player) writeFrame() {
	if p.frameSrc == nil {
		return
	}
	img := p.frameSrc(p.frame)
	if img == nil {
		return
	}
	if err := p.sink.write(img); err != nil {
		p.logger.Log("level", "critical", "status", "frame write failed", "output", p.output, "err", err)
		if cerr := p.sink.close(); cerr != nil {
			p.logger.Log("level", "warning", "status", "sink close failed", "output", p.output, "err", cerr)
		}
		p.sink = nil
		p.rec = RecIdle
		return
	}
	p.written++
}

// Pause suspends frame advancement. Idempotent.
func (p *Player) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

// Unpause resumes frame advancement. Idempotent.
func (p *Player) Unpause() {
	p.mu.Lock()
	p.paused = false
	p.mu.Unlock()
}

// TogglePause flips the paused flag.
func (p *Player) TogglePause() {
	p.mu.Lock()
	p.paused = !p.paused
	p.mu.Unlock()
}

// Restart puts the cursor back on frame 1 without touching the paused flag.
func (p *Player) Restart() {
	p.mu.Lock()
	p.frame = 1
	p.mu.Unlock()
}

// SetLoop sets the loop flag.
func (p *Player) SetLoop(on bool) {
	p.mu.Lock()
	p.loop = on
	p.mu.Unlock()
}

// ToggleLoop flips the loop flag.
func (p *Player) ToggleLoop() {
	p.mu.Lock()
	p.loop = !p.loop
	p.mu.Unlock()
}

// SetFrame jumps to the given 1 based frame. Out of range values are ignored
// so a scrub handler may call this repeatedly without validating bounds.
func (p *Player) SetFrame(i int) {
	p.mu.Lock()
	if i >= 1 && i <= p.numFrames {
		p.frame = i
	}
	p.mu.Unlock()
}

// StepForward jumps ahead by twice the speed. Unlike Advance, an overflow
// wraps by the excess amount. With looping off it clamps to the last frame
// and pauses.
func (p *Player) StepForward() {
	p.mu.Lock()
	i := p.frame + 2*speedTable[p.speedIdx]
	if i > p.numFrames {
		if p.loop {
			i = 1 + (i - p.numFrames)
			if i > p.numFrames {
				i = p.numFrames
			}
		} else {
			i = p.numFrames
			p.paused = true
		}
	}
	p.frame = i
	p.mu.Unlock()
}

// StepBackward jumps back by twice the speed, wrapping by the excess. With
// looping off it clamps to the first frame and pauses.
func (p *Player) StepBackward() {
	p.mu.Lock()
	i := p.frame - 2*speedTable[p.speedIdx]
	if i < 1 {
		if p.loop {
			i = p.numFrames + i
			if i < 1 {
				i = 1
			}
		} else {
			i = 1
			p.paused = true
		}
	}
	p.frame = i
	p.mu.Unlock()
}

// SetSpeed selects the multiplier at the given table position. Out of range
// positions are ignored.
func (p *Player) SetSpeed(i int) {
	p.mu.Lock()
	if i >= 0 && i < len(speedTable) {
		p.speedIdx = i
	}
	p.mu.Unlock()
}

// SpeedUp selects the next multiplier, clamping at the fastest.
func (p *Player) SpeedUp() {
	p.mu.Lock()
	if p.speedIdx < len(speedTable)-1 {
		p.speedIdx++
	}
	p.mu.Unlock()
}

// SpeedDown selects the previous multiplier, clamping at the slowest.
func (p *Player) SpeedDown() {
	p.mu.Lock()
	if p.speedIdx > 0 {
		p.speedIdx--
	}
	p.mu.Unlock()
}

// ScrubBegin pauses playback for the duration of a drag, remembering the
// paused flag the first time. Reentrant: repeated calls before ScrubEnd do
// not overwrite the captured value.
func (p *Player) ScrubBegin() {
	p.mu.Lock()
	if p.scrubWas == nil {
		was := p.paused
		p.scrubWas = &was
	}
	p.paused = true
	p.mu.Unlock()
}

// ScrubEnd restores the paused flag captured by ScrubBegin. A no-op when
// nothing was captured.
func (p *Player) ScrubEnd() {
	p.mu.Lock()
	if p.scrubWas != nil {
		p.paused = *p.scrubWas
		p.scrubWas = nil
	}
	p.mu.Unlock()
}

// SetFrameSource registers the provider of rendered frames for recording.
func (p *Player) SetFrameSource(src FrameSource) {
	p.mu.Lock()
	p.frameSrc = src
	p.mu.Unlock()
}

// StartRecording opens the recording sink at the configured output path and
// locks the recording configuration. The system never overwrites: an existing
// file, like an already open recording, fails with ErrOutputExists.
func (p *Player) StartRecording() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rec != RecIdle {
		err := fmt.Errorf("recording is %s: %w", p.rec, ErrOutputExists)
		p.logger.Log("level", "warning", "status", "recording not started", "err", err)
		return err
	}
	sink, err := newVideoSink(p.output, p.fps, p.quality)
	if err != nil {
		p.logger.Log("level", "warning", "status", "recording not started", "err", err)
		return err
	}
	if p.frameSrc == nil {
		p.logger.Log("level", "warning", "status", "no frame source, recording will be empty")
	}
	p.sink = sink
	p.rec = RecStarted
	p.written = 0
	p.logger.Log("level", "notice", "status", "recording", "output", p.output, "fps", p.fps, "quality", p.quality)
	return nil
}

// StopRecording finalizes the container and unlocks the recording
// configuration. The sink handle is dropped on the next advance. Without a
// started recording it fails with ErrOutputMissing.
func (p *Player) StopRecording() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rec != RecStarted {
		err := fmt.Errorf("recording is %s: %w", p.rec, ErrOutputMissing)
		p.logger.Log("level", "warning", "status", "recording not stopped", "err", err)
		return err
	}
	if err := p.sink.close(); err != nil {
		p.sink = nil
		p.rec = RecIdle
		p.logger.Log("level", "critical", "status", "recording lost", "output", p.output, "err", err)
		return err
	}
	p.rec = RecEnded
	p.logger.Log("level", "notice", "status", "recorded", "output", p.output, "frames", p.written)
	return nil
}

// releaseSink force closes any open recording during session teardown.
func (p *Player) releaseSink() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sink != nil && p.rec == RecStarted {
		if err := p.sink.close(); err != nil {
			p.logger.Log("level", "warning", "status", "sink close failed", "output", p.output, "err", err)
		}
	}
	p.sink = nil
	p.rec = RecIdle
}

// SetOutput sets the recording target path, at most 64 characters. Invalid
// paths and calls during an open recording are ignored.
func (p *Player) SetOutput(path string) {
	p.mu.Lock()
	if p.rec != RecStarted && len(path) > 0 && len(path) <= maxOutputLen {
		p.output = path
	}
	p.mu.Unlock()
}

// SetQuality sets the recording quality, 1 to 100. Invalid values and calls
// during an open recording are ignored.
func (p *Player) SetQuality(q int) {
	p.mu.Lock()
	if p.rec != RecStarted && q >= 1 && q <= 100 {
		p.quality = q
	}
	p.mu.Unlock()
}

// SetFPS sets the recording frame rate, 1 to 120. Invalid values and calls
// during an open recording are ignored.
func (p *Player) SetFPS(fps int) {
	p.mu.Lock()
	if p.rec != RecStarted && fps >= 1 && fps <= 120 {
		p.fps = fps
	}
	p.mu.Unlock()
}

// Frame returns the current 1 based frame index.
func (p *Player) Frame() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// Paused returns the paused flag.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Stopped returns whether the advance tick is halted.
func (p *Player) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// Speed returns the current multiplier value.
func (p *Player) Speed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return speedTable[p.speedIdx]
}

// Recording returns the recording sub-state.
func (p *Player) Recording() RecState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rec
}

// Snapshot returns a copy of the playback state for the refresh tick.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Frame:         p.frame,
		Paused:        p.paused,
		Loop:          p.loop,
		Speed:         speedTable[p.speedIdx],
		Recording:     p.rec,
		ConfigLocked:  p.rec == RecStarted,
		FramesWritten: p.written,
		Output:        p.output,
		Quality:       p.quality,
		FPS:           p.fps,
	}
}
