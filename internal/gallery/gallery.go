// Package gallery manages the capture files in the output directory.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andresmejia3/smilecam/internal/capture"
	"github.com/andresmejia3/smilecam/internal/store"
	"github.com/andresmejia3/smilecam/internal/types"
	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidName is returned for names that are not capture files.
	ErrInvalidName = errors.New("not a capture file name")
	// ErrNotFound is returned when a capture file does not exist.
	ErrNotFound = errors.New("capture not found")
	// ErrSameDir is returned when an export would overwrite its own source.
	ErrSameDir = errors.New("export destination is the gallery directory")
)

// Gallery is a directory of smile_*.jpg files.
type Gallery struct {
	Dir string
}

func New(dir string) *Gallery {
	return &Gallery{Dir: dir}
}

// List returns the captures newest first. A missing directory is an empty
// gallery.
func (g *Gallery) List() ([]types.Capture, error) {
	entries, err := os.ReadDir(g.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read gallery %s: %w", g.Dir, err)
	}

	var out []types.Capture
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		at, ok := capture.ParseFilename(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, types.Capture{
			Name:    e.Name(),
			Path:    filepath.Join(g.Dir, e.Name()),
			TakenAt: at,
			Size:    info.Size(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TakenAt.Equal(out[j].TakenAt) {
			return out[i].Name > out[j].Name
		}
		return out[i].TakenAt.After(out[j].TakenAt)
	})
	return out, nil
}

// Path resolves a capture name inside the gallery. Anything that is not a
// bare capture file name is rejected.
func (g *Gallery) Path(name string) (string, error) {
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, ok := capture.ParseFilename(name); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(g.Dir, name), nil
}

// Delete removes one capture.
func (g *Gallery) Delete(name string) error {
	path, err := g.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// Forgetter drops the catalog row of a capture.
type Forgetter interface {
	DeleteCapture(ctx context.Context, name string) error
}

// Remove deletes the capture file and, when cat is set, its catalog row. The
// row is dropped even if the file is already gone, and ErrNotFound is only
// returned when neither existed. Catalog failures other than a missing row
// are passed to warn and do not fail the call.
func (g *Gallery) Remove(ctx context.Context, name string, cat Forgetter, warn func(error)) error {
	fileErr := g.Delete(name)
	if fileErr != nil && !errors.Is(fileErr, ErrNotFound) {
		return fileErr
	}
	if cat == nil {
		return fileErr
	}

	err := cat.DeleteCapture(ctx, name)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, store.ErrNotFound) && warn != nil:
		warn(err)
	}
	return fileErr
}

// Clear removes every capture and returns how many were deleted. Other
// files in the directory are left alone.
func (g *Gallery) Clear() (int, error) {
	caps, err := g.List()
	if err != nil {
		return 0, err
	}
	var errs []error
	n := 0
	for _, c := range caps {
		if err := os.Remove(c.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

// ExportOptions controls Export.
type ExportOptions struct {
	// ThumbSize, when positive, also writes a ThumbSize x ThumbSize
	// thumbnail of each capture into dest/thumbs.
	ThumbSize int
}

// ThumbDir is the thumbnail subdirectory of an export.
const ThumbDir = "thumbs"

// Export copies every capture into dest. progress, if set, is called after
// each file.
func (g *Gallery) Export(dest string, opts ExportOptions, progress func(types.Capture)) (int, error) {
	if sameDir(dest, g.Dir) {
		return 0, fmt.Errorf("%w: %s", ErrSameDir, dest)
	}
	caps, err := g.List()
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return 0, fmt.Errorf("create export directory %s: %w", dest, err)
	}
	if opts.ThumbSize > 0 {
		if err := os.MkdirAll(filepath.Join(dest, ThumbDir), 0755); err != nil {
			return 0, fmt.Errorf("create thumbnail directory: %w", err)
		}
	}

	n := 0
	for _, c := range caps {
		if err := copyFile(c.Path, filepath.Join(dest, c.Name)); err != nil {
			return n, err
		}
		if opts.ThumbSize > 0 {
			if err := thumbnail(c.Path, filepath.Join(dest, ThumbDir, c.Name), opts.ThumbSize); err != nil {
				return n, err
			}
		}
		n++
		if progress != nil {
			progress(c)
		}
	}
	return n, nil
}

// Merge fills in catalog data (ID, session, trigger) for files that the
// catalog knows about. Catalog rows whose files are gone are dropped.
func Merge(files, catalog []types.Capture) []types.Capture {
	byName := make(map[string]types.Capture, len(catalog))
	for _, c := range catalog {
		if _, seen := byName[c.Name]; !seen {
			byName[c.Name] = c
		}
	}
	out := make([]types.Capture, len(files))
	for i, f := range files {
		if c, ok := byName[f.Name]; ok {
			f.ID = c.ID
			f.SessionID = c.SessionID
			f.Trigger = c.Trigger
		}
		out[i] = f
	}
	return out
}

// sameDir reports whether a and b are the same existing directory.
func sameDir(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// copyFile refuses to copy a file onto itself, since creating dst would
// truncate src.
func copyFile(src, dst string) error {
	if si, err := os.Stat(src); err == nil {
		if di, err := os.Stat(dst); err == nil && os.SameFile(si, di) {
			return fmt.Errorf("%w: %s", ErrSameDir, dst)
		}
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

func thumbnail(src, dst string, size int) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}
	thumb := imaging.Thumbnail(img, size, size, imaging.Lanczos)
	if err := imaging.Save(thumb, dst, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("save thumbnail %s: %w", dst, err)
	}
	return nil
}
