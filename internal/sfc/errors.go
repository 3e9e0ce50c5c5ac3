package sfc

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrSegmentParse indicates a file could not be split into segments
	ErrSegmentParse = errors.New("segment parse failed")

	// ErrUnsupportedFile indicates the file extension is not handled
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// SegmentError reports a segment that could not be parsed
type SegmentError struct {
	File    string
	Segment string
	Reason  string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("failed to parse %s segment of %s: %s", e.Segment, e.File, e.Reason)
}

func (e *SegmentError) Unwrap() error {
	return ErrSegmentParse
}

// NewSegmentError creates a new segment parse error
func NewSegmentError(file, segment, reason string) error {
	return &SegmentError{
		File:    file,
		Segment: segment,
		Reason:  reason,
	}
}

// UnsupportedFileError reports a file whose extension has no reader
type UnsupportedFileError struct {
	File string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.File)
}

func (e *UnsupportedFileError) Unwrap() error {
	return ErrUnsupportedFile
}
