package web

import (
	"os"

	"github.com/andresmejia3/smilecam/internal/gallery"
	"github.com/andresmejia3/smilecam/internal/types"
	"github.com/gofiber/fiber/v2"
)

// CaptureView is a capture as listed by the API.
type CaptureView struct {
	types.Capture
	URL string `json:"url"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"catalog": s.catalog != nil,
	})
}

// handleList returns the captures on disk, newest first.
func (s *Server) handleList(c *fiber.Ctx) error {
	files, err := s.gallery.List()
	if err != nil {
		return err
	}
	if s.catalog != nil {
		rows, err := s.catalog.ListCaptures(c.UserContext())
		if err != nil {
			s.log.Warn("failed to read capture catalog", "error", err)
		} else {
			files = gallery.Merge(files, rows)
		}
	}

	out := make([]CaptureView, 0, len(files))
	for _, f := range files {
		out = append(out, CaptureView{Capture: f, URL: "/captures/" + f.Name})
	}
	return c.JSON(out)
}

// handleImage serves one JPEG.
func (s *Server) handleImage(c *fiber.Ctx) error {
	path, err := s.gallery.Path(c.Params("name"))
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "capture not found")
	}
	c.Type("jpg")
	return c.SendFile(path)
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	name := c.Params("name")
	var cat gallery.Forgetter
	if s.catalog != nil {
		cat = s.catalog
	}
	err := s.gallery.Remove(c.UserContext(), name, cat, func(err error) {
		s.log.Warn("failed to remove capture from catalog", "file", name, "error", err)
	})
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleClear(c *fiber.Ctx) error {
	n, err := s.gallery.Clear()
	if err != nil {
		return err
	}
	if s.catalog != nil {
		if err := s.catalog.ClearCaptures(c.UserContext()); err != nil {
			s.log.Warn("failed to clear capture catalog", "error", err)
		}
	}
	return c.JSON(fiber.Map{"deleted": n})
}

func (s *Server) handleSessions(c *fiber.Ctx) error {
	if s.catalog == nil {
		return fiber.NewError(fiber.StatusNotFound, "no capture catalog configured")
	}
	sessions, err := s.catalog.ListSessions(c.UserContext())
	if err != nil {
		return err
	}
	if sessions == nil {
		sessions = []types.Session{}
	}
	return c.JSON(sessions)
}
