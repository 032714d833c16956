package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Filename layout: smile_YYYYMMDD_HHMMSS.jpg
const (
	FilePrefix = "smile_"
	FileExt    = ".jpg"
	TimeLayout = "20060102_150405"
)

// Encoder writes an image to a file path.
type Encoder interface {
	WriteJPEG(path string, quality int) error
}

// Filename returns the capture file name for t. Two captures in the same
// second share a name and the later one overwrites the earlier.
func Filename(t time.Time) string {
	return FilePrefix + t.Format(TimeLayout) + FileExt
}

// ParseFilename recovers the capture time from a file name.
func ParseFilename(name string) (time.Time, bool) {
	base := filepath.Base(name)
	if len(base) != len(FilePrefix)+len(TimeLayout)+len(FileExt) ||
		base[:len(FilePrefix)] != FilePrefix || filepath.Ext(base) != FileExt {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TimeLayout, base[len(FilePrefix):len(base)-len(FileExt)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DirSink writes captures into a directory.
type DirSink struct {
	Dir     string
	Quality int
}

// NewDirSink creates dir if needed.
func NewDirSink(dir string, quality int) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &DirSink{Dir: dir, Quality: quality}, nil
}

// Save encodes img as a timestamped JPEG and returns its path.
func (s *DirSink) Save(img Encoder, at time.Time) (string, error) {
	path := filepath.Join(s.Dir, Filename(at))
	if err := img.WriteJPEG(path, s.Quality); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
