// Package smile runs face and smile cascades over a frame and reduces the
// per-face smile boxes to a single "smiling" signal.
package smile

import (
	"image"
	"image/color"
)

// Labels drawn above each face.
const (
	LabelSmiling = "Smiling!"
	LabelFace    = "Face"
)

// Overlay colours.
var (
	FaceColor  = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	SmileColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}
)

// Params tunes one multi-scale cascade scan.
type Params struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      image.Point
}

// FaceParams are the fixed face cascade settings.
var FaceParams = Params{ScaleFactor: 1.1, MinNeighbors: 5, MinSize: image.Pt(30, 30)}

// SmileParams returns the smile cascade settings for a sensitivity threshold.
// Higher thresholds require more agreeing raw detections.
func SmileParams(threshold int) Params {
	return Params{ScaleFactor: 1.8, MinNeighbors: threshold, MinSize: image.Pt(25, 25)}
}

// Gray is a single-channel copy of a frame.
type Gray interface {
	Bounds() image.Rectangle
	Close() error
}

// Frame is a colour image that can be converted and drawn on.
type Frame interface {
	Bounds() image.Rectangle
	Grayscale() Gray
	Clone() Frame
	Rectangle(r image.Rectangle, c color.RGBA, thickness int)
	Text(s string, at image.Point, scale float64, c color.RGBA, thickness int)
	Close() error
}

// Detector finds objects inside roi of a grayscale image. Returned
// rectangles are relative to roi.Min.
type Detector interface {
	Detect(gray Gray, roi image.Rectangle, p Params) []image.Rectangle
}

// Face is one detected face and the smiles found inside it. Smile
// rectangles are in frame coordinates.
type Face struct {
	Box    image.Rectangle
	Smiles []image.Rectangle
}

// Smiling reports whether the smile cascade fired at least once.
func (f Face) Smiling() bool { return len(f.Smiles) > 0 }

// Label is the overlay text for the face.
func (f Face) Label() string {
	if f.Smiling() {
		return LabelSmiling
	}
	return LabelFace
}

// Result is the outcome of one pass over a frame.
type Result struct {
	Faces   []Face
	Smiling bool
}
