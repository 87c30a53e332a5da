package animated

import "errors"

// Sentinel errors returned by the loading, resampling and playback layers.
// Callers match on these with errors.Is; the returned errors wrap them with
// the offending object name, frame number or path.
var (
	// ErrInvalidData denotes trajectory input which cannot be animated:
	// unknown reference mode, missing objects, or empty state channels.
	ErrInvalidData = errors.New("animated: invalid trajectory data")
	// ErrMalformedState denotes a state history whose shape is broken,
	// such as a state matrix without exactly six channels.
	ErrMalformedState = errors.New("animated: malformed state history")
	// ErrInvalidOption denotes an option value outside its legal set.
	ErrInvalidOption = errors.New("animated: invalid option")
	// ErrTimeMismatch denotes object time vectors whose spans disagree.
	ErrTimeMismatch = errors.New("animated: mismatched time vectors")
	// ErrInvalidTime denotes a negative or non strictly increasing time
	// vector.
	ErrInvalidTime = errors.New("animated: non increasing time vector")
	// ErrOutputExists denotes an attempt to record over an existing output
	// file or while a recording is already open.
	ErrOutputExists = errors.New("animated: recording already in progress")
	// ErrOutputMissing denotes an attempt to stop a recording when none
	// was started.
	ErrOutputMissing = errors.New("animated: no recording in progress")
)
