package camera

import (
	"errors"
	"image"
	"image/color"

	"github.com/andresmejia3/smilecam/internal/runner"
	"github.com/andresmejia3/smilecam/internal/smile"
	"gocv.io/x/gocv"
)

// Frame wraps a BGR gocv.Mat. Frames handed out by Source are borrowed and
// stay owned by the source; clones own their Mat.
type Frame struct {
	mat   gocv.Mat
	owned bool
}

var _ runner.Frame = (*Frame)(nil)

// NewFrame takes ownership of mat.
func NewFrame(mat gocv.Mat) *Frame {
	return &Frame{mat: mat, owned: true}
}

func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.mat.Cols(), f.mat.Rows())
}

// Grayscale converts the frame for the cascades.
func (f *Frame) Grayscale() smile.Gray {
	gray := gocv.NewMat()
	gocv.CvtColor(f.mat, &gray, gocv.ColorBGRToGray)
	return &Gray{mat: gray}
}

func (f *Frame) Clone() smile.Frame {
	return &Frame{mat: f.mat.Clone(), owned: true}
}

func (f *Frame) Rectangle(r image.Rectangle, c color.RGBA, thickness int) {
	gocv.Rectangle(&f.mat, r, c, thickness)
}

func (f *Frame) Text(s string, at image.Point, scale float64, c color.RGBA, thickness int) {
	gocv.PutText(&f.mat, s, at, gocv.FontHersheySimplex, scale, c, thickness)
}

// WriteJPEG encodes the frame to path.
func (f *Frame) WriteJPEG(path string, quality int) error {
	if f.mat.Empty() {
		return errors.New("empty frame")
	}
	if !gocv.IMWriteWithParams(path, f.mat, []int{int(gocv.IMWriteJpegQuality), quality}) {
		return errors.New("opencv could not encode image")
	}
	return nil
}

// Close releases an owned Mat. Borrowed frames are left to their source.
func (f *Frame) Close() error {
	if !f.owned {
		return nil
	}
	return f.mat.Close()
}

// Gray is a single-channel Mat.
type Gray struct {
	mat gocv.Mat
}

func (g *Gray) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.mat.Cols(), g.mat.Rows())
}

func (g *Gray) Close() error { return g.mat.Close() }
