package apng

import (
	"fmt"

	"github.com/pkg/errors"
)

// ImagesNotFoundError is returned by CreateConfig when given an empty
// frame list.
type ImagesNotFoundError struct{}

func (ImagesNotFoundError) Error() string {
	return "apng: no images given"
}

// WrongDataSizeError is returned when a frame's pixel buffer length
// disagrees with its declared geometry.
type WrongDataSizeError struct {
	Expected int
	Got      int
}

func (e WrongDataSizeError) Error() string {
	return fmt.Sprintf("apng: wrong data size: expected %d, got %d", e.Expected, e.Got)
}

// WrongFrameNumsError is returned by FinishEncode when the number of frames
// written differs from the Config.NumFrames declared.
type WrongFrameNumsError struct {
	Expected uint32
	Actual   uint32
}

func (e WrongFrameNumsError) Error() string {
	return fmt.Sprintf("apng: wrong frame count: expected %d, got %d", e.Expected, e.Actual)
}

// wrapIO wraps a sink I/O or compression failure with a stack trace and a
// description of which stage of the pipeline produced it.
func wrapIO(err error, what string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, what)
}
