package audio

import "errors"

var (
	// ErrUnknownFormat indicates the clip bytes match no supported container.
	ErrUnknownFormat = errors.New("unrecognised audio format")
	// ErrEmptyBuffer indicates a decode that yielded zero samples.
	ErrEmptyBuffer = errors.New("decoded buffer contains no samples")
	// ErrNoData indicates an empty clip.
	ErrNoData = errors.New("clip contains no data")
)
