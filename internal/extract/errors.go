package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSource matches every *SourceError.
	ErrInvalidSource = errors.New("invalid source")
	// ErrExtraction matches every *ExtractionError.
	ErrExtraction = errors.New("extraction failed")
	// ErrLocked reports that another extraction holds the source lock.
	ErrLocked = errors.New("source is locked by another extraction")
)

// SourceError reports a media file ffprobe could not inspect.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("invalid source %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool { return target == ErrInvalidSource }

func (e *SourceError) ErrorKind() string { return "invalid_source" }

// ExtractionError reports a failed ffmpeg run.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract subtitles from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

func (e *ExtractionError) ErrorKind() string {
	var classified interface{ ErrorKind() string }
	if errors.As(e.Err, &classified) {
		return classified.ErrorKind()
	}
	return "extraction_failed"
}
