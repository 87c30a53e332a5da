package animated

import (
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// Session owns an assembled animation, its player and the two periodic
// sources: the advance tick lives inside the player, the UI refresh tick
// lives here. Both default to the configured periods.
type Session struct {
	mu        sync.Mutex
	anim      *Animation
	player    *Player
	refresh   time.Duration
	ticker    *time.Ticker
	done      chan struct{}
	wg        sync.WaitGroup
	onRefresh func(Snapshot)
	closed    bool
	logger    kitlog.Logger
}

// NewSession builds the animation tensor from a loaded set and wraps it with
// a player. The orbit parameters are consumed here: once the transformation
// has run, the session retains only the gridded tensor. A nil logger selects
// the default logfmt logger on stdout.
func NewSession(ts *TrajectorySet, xf Transform, logger kitlog.Logger) *Session {
	if logger == nil {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	}
	anim := BuildAnimation(ts, xf)
	s := &Session{
		anim:    anim,
		player:  NewPlayer(anim.Frames(), logger),
		refresh: conf().Refresh,
		logger:  kitlog.With(logger, "subsys", "session"),
	}
	s.logger.Log("level", "info", "status", "assembled", "mode", anim.Mode(), "objects", len(anim.Objects()), "frames", anim.Frames())
	return s
}

// Player returns the playback controller.
func (s *Session) Player() *Player { return s.player }

// Animation returns the read only tensor.
func (s *Session) Animation() *Animation { return s.anim }

// OnRefresh registers the callback invoked with a playback snapshot on every
// refresh tick. Register before Start.
func (s *Session) OnRefresh(fn func(Snapshot)) {
	s.mu.Lock()
	s.onRefresh = fn
	s.mu.Unlock()
}

// Start launches both periodic sources. A no-op on a closed or already
// started session.
func (s *Session) Start() {
	s.mu.Lock()
	if s.closed || s.ticker != nil {
		s.mu.Unlock()
		return
	}
	s.ticker = time.NewTicker(s.refresh)
	s.done = make(chan struct{})
	ticker, done, fn := s.ticker, s.done, s.onRefresh
	s.mu.Unlock()
	s.player.Start()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if fn != nil {
					fn(s.player.Snapshot())
				}
			}
		}
	}()
}

// SeekTime scrubs to the grid frame nearest the given time. Times outside
// the animated span are ignored, like out of range frames.
func (s *Session) SeekTime(t float64) {
	s.player.SetFrame(s.anim.FrameForTime(t))
}

// Close stops both periodic sources, joins their goroutines and releases any
// open recording sink. No callback fires after it returns. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	ticker, done := s.ticker, s.done
	s.ticker, s.done = nil, nil
	s.mu.Unlock()
	s.player.Stop()
	if ticker != nil {
		close(done)
		ticker.Stop()
		s.wg.Wait()
	}
	s.player.releaseSink()
	s.logger.Log("level", "info", "status", "closed")
}
