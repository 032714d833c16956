package smile

import (
	"image"
	"image/color"
)

// MockFrame implements Frame in memory and records every overlay drawn on it.
type MockFrame struct {
	Size image.Point
	Rects []DrawnRect
	Texts []DrawnText

	// Closed counts Close calls.
	Closed int
	// Clones lists every frame returned by Clone, in order.
	Clones []*MockFrame
}

// DrawnRect records one Rectangle call.
type DrawnRect struct {
	Rect  image.Rectangle
	Color color.RGBA
}

// DrawnText records one Text call.
type DrawnText struct {
	Text  string
	At    image.Point
	Color color.RGBA
}

// NewMockFrame creates a blank frame of the given size.
func NewMockFrame(w, h int) *MockFrame {
	return &MockFrame{Size: image.Pt(w, h)}
}

func (m *MockFrame) Bounds() image.Rectangle {
	return image.Rectangle{Max: m.Size}
}

func (m *MockFrame) Grayscale() Gray {
	return &MockGray{Rect: m.Bounds()}
}

func (m *MockFrame) Clone() Frame {
	c := &MockFrame{Size: m.Size}
	c.Rects = append(c.Rects, m.Rects...)
	c.Texts = append(c.Texts, m.Texts...)
	m.Clones = append(m.Clones, c)
	return c
}

func (m *MockFrame) Rectangle(r image.Rectangle, c color.RGBA, thickness int) {
	m.Rects = append(m.Rects, DrawnRect{Rect: r, Color: c})
}

func (m *MockFrame) Text(s string, at image.Point, scale float64, c color.RGBA, thickness int) {
	m.Texts = append(m.Texts, DrawnText{Text: s, At: at, Color: c})
}

func (m *MockFrame) Close() error {
	m.Closed++
	return nil
}

// MockGray implements Gray.
type MockGray struct {
	Rect   image.Rectangle
	Closed bool
}

func (g *MockGray) Bounds() image.Rectangle { return g.Rect }

func (g *MockGray) Close() error {
	g.Closed = true
	return nil
}

// MockDetector implements Detector with a scripted response.
type MockDetector struct {
	// DetectFunc is called when Detect is invoked. Nil means no detections.
	DetectFunc func(roi image.Rectangle, p Params) []image.Rectangle

	Calls []MockDetectCall
}

// MockDetectCall records one Detect invocation.
type MockDetectCall struct {
	ROI    image.Rectangle
	Params Params
}

func (d *MockDetector) Detect(gray Gray, roi image.Rectangle, p Params) []image.Rectangle {
	d.Calls = append(d.Calls, MockDetectCall{ROI: roi, Params: p})
	if d.DetectFunc == nil {
		return nil
	}
	return d.DetectFunc(roi, p)
}

// Fixed returns a DetectFunc that always reports rects.
func Fixed(rects ...image.Rectangle) func(image.Rectangle, Params) []image.Rectangle {
	return func(image.Rectangle, Params) []image.Rectangle { return rects }
}
