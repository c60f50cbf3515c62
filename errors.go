package main

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMaze is returned when the bitmap has no open pixel to seed from
	ErrEmptyMaze = errors.New("empty maze: no open space found")

	// ErrPathNotFound reports that the search exhausted the open list.
	// It is a normal outcome and never aborts the pipeline.
	ErrPathNotFound = errors.New("no path found")

	ErrNodeNotInGraph = errors.New("position is not a graph node")
	ErrSearchTimedOut = errors.New("search timed out")
	ErrNoEntrance     = errors.New("could not determine start and end positions")

	// ErrImageTooLarge is wrapped in an ImageDecodeError when the image
	// header declares more pixels than allowed
	ErrImageTooLarge = errors.New("image too large")
)

// ImageDecodeError wraps failures to open or decode the source bitmap
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to decode image: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }
