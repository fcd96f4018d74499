package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/scholarstream/internal/store"
)

// StoryHandler serves published success stories.
type StoryHandler struct {
	stories *store.StoryRepo
}

// NewStoryHandler constructs StoryHandler.
func NewStoryHandler(stories *store.StoryRepo) *StoryHandler {
	return &StoryHandler{stories: stories}
}

// List returns all success stories.
func (h *StoryHandler) List(c *fiber.Ctx) error {
	stories, err := h.stories.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stories)
}
