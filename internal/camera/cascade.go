package camera

import (
	"fmt"
	"image"
	"os"

	"github.com/andresmejia3/smilecam/internal/smile"
	"gocv.io/x/gocv"
)

// Cascade is a Haar cascade classifier.
type Cascade struct {
	classifier gocv.CascadeClassifier
}

var _ smile.Detector = (*Cascade)(nil)

// LoadCascade reads a cascade XML file.
func LoadCascade(path string) (*Cascade, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cascade file not found: %s: %w", path, err)
	}

	c := gocv.NewCascadeClassifier()
	if !c.Load(path) {
		c.Close()
		return nil, fmt.Errorf("failed to load cascade: %s", path)
	}
	return &Cascade{classifier: c}, nil
}

// Detect scans roi of gray. Rectangles come back relative to roi.Min.
func (c *Cascade) Detect(gray smile.Gray, roi image.Rectangle, p smile.Params) []image.Rectangle {
	g, ok := gray.(*Gray)
	if !ok {
		return nil
	}
	roi = roi.Intersect(g.Bounds())
	if roi.Empty() {
		return nil
	}

	region := g.mat.Region(roi)
	defer region.Close()

	return c.classifier.DetectMultiScaleWithParams(region, p.ScaleFactor, p.MinNeighbors, 0, p.MinSize, image.Point{})
}

func (c *Cascade) Close() error { return c.classifier.Close() }
