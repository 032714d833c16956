package camera

import (
	"github.com/andresmejia3/smilecam/internal/runner"
	"github.com/andresmejia3/smilecam/internal/smile"
	"gocv.io/x/gocv"
)

// WindowTitle is the preview window title.
const WindowTitle = "Smile Detector"

// Window is an OpenCV HighGUI preview window.
type Window struct {
	win *gocv.Window
}

var _ runner.Surface = (*Window)(nil)

func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show displays frames produced by this package and ignores anything else.
func (w *Window) Show(frame smile.Frame) {
	if f, ok := frame.(*Frame); ok {
		w.win.IMShow(f.mat)
	}
}

// PollKey pumps the window event loop for 1ms.
func (w *Window) PollKey() int {
	k := w.win.WaitKey(1)
	if k < 0 {
		return runner.KeyNone
	}
	return k & 0xFF
}

func (w *Window) Close() error { return w.win.Close() }
