package animated

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/icza/mjpeg"
)

// Dimensions of the container when a recording is stopped before the first
// frame fixed them.
const (
	fallbackWidth  = 640
	fallbackHeight = 480
)

// videoSink writes rendered frames into a Motion JPEG AVI container. The
// container is created on the first frame, whose bounds fix its dimensions.
type videoSink struct {
	path    string
	fps     int
	quality int
	aw      mjpeg.AviWriter
	closed  bool
}

// newVideoSink prepares a sink at the given path. The path must not exist:
// the system never overwrites.
func newVideoSink(path string, fps, quality int) (*videoSink, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrOutputExists)
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return &videoSink{path: path, fps: fps, quality: quality}, nil
}

// write encodes one frame as JPEG at the configured quality and appends it to
// the container. Synchronous: the write completes before the advance tick
// which requested it returns.
func (vs *videoSink) write(img image.Image) error {
	if vs.closed {
		return fmt.Errorf("sink for %s already finalized: %w", vs.path, ErrOutputMissing)
	}
	if vs.aw == nil {
		b := img.Bounds()
		aw, err := mjpeg.New(vs.path, int32(b.Dx()), int32(b.Dy()), int32(vs.fps))
		if err != nil {
			return err
		}
		vs.aw = aw
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: vs.quality}); err != nil {
		return err
	}
	return vs.aw.AddFrame(buf.Bytes())
}

// close finalizes the container. A recording stopped before any frame still
// materializes a valid, empty movie.
func (vs *videoSink) close() error {
	if vs.closed {
		return nil
	}
	vs.closed = true
	if vs.aw == nil {
		aw, err := mjpeg.New(vs.path, fallbackWidth, fallbackHeight, int32(vs.fps))
		if err != nil {
			return err
		}
		vs.aw = aw
	}
	err := vs.aw.Close()
	vs.aw = nil
	return err
}
