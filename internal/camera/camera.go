// Package camera adapts OpenCV (gocv) to the smile pass and the run loop:
// the webcam source, Haar cascades, JPEG encoding and the preview window.
package camera

import (
	"fmt"

	"github.com/andresmejia3/smilecam/internal/runner"
	"gocv.io/x/gocv"
)

// Source reads frames from a webcam into a single reused Mat.
type Source struct {
	cap   *gocv.VideoCapture
	frame *Frame
	index int
}

var _ runner.Source = (*Source)(nil)

// Open starts device index and requests a width x height capture. The
// driver may pick a different resolution.
func Open(index, width, height int) (*Source, error) {
	vc, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", index, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open camera %d: device not available", index)
	}
	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))

	return &Source{
		cap:   vc,
		frame: &Frame{mat: gocv.NewMat()},
		index: index,
	}, nil
}

// Read grabs the next frame. An empty frame counts as a failed read. The
// returned frame is overwritten by the next Read.
func (s *Source) Read() (runner.Frame, bool) {
	if ok := s.cap.Read(&s.frame.mat); !ok || s.frame.mat.Empty() {
		return nil, false
	}
	return s.frame, true
}

// Close releases the device and the frame buffer.
func (s *Source) Close() error {
	err := s.cap.Close()
	if merr := s.frame.mat.Close(); err == nil {
		err = merr
	}
	if err != nil {
		return fmt.Errorf("release camera %d: %w", s.index, err)
	}
	return nil
}
