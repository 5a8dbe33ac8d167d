package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/shared"
)

type StoryHandler struct {
	storySvc StoryServiceInterface
}

func NewStoryHandler(storySvc StoryServiceInterface) *StoryHandler {
	return &StoryHandler{
		storySvc: storySvc,
	}
}

// @Summary List Stories
// @Description List the caller's stories as compact cards
// @Tags story
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=[]dto.StoryCard}
// @Router /api/v1/story [get]
func (h *StoryHandler) ListStories(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	cards, err := h.storySvc.ListStories(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", cards)
}

// @Summary Get Story
// @Description Get one story with its full progress state
// @Tags story
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storyId path string true "Story ID"
// @Success 200 {object} shared.Response{data=dto.StoryResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/story/{storyId} [get]
func (h *StoryHandler) GetStory(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	storyID := c.Params("storyId")

	story, err := h.storySvc.GetStory(userID, storyID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", story)
}

// @Summary Record Choice
// @Description Append one branching decision to a story and advance the scene
// @Tags story
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storyId path string true "Story ID"
// @Param request body dto.RecordChoiceRequest true "Choice"
// @Success 200 {object} shared.Response{data=dto.StoryResponse}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/v1/story/{storyId}/choice [post]
func (h *StoryHandler) RecordChoice(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	storyID := c.Params("storyId")

	var req dto.RecordChoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, err.Error())
	}
	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, formatFirstValidationError(err))
	}

	story, err := h.storySvc.RecordChoice(userID, storyID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", story)
}

// @Summary Complete Story
// @Description Mark a story finished and record the session duration
// @Tags story
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storyId path string true "Story ID"
// @Param request body dto.CompleteStoryRequest true "Completion"
// @Success 200 {object} shared.Response{data=dto.StoryResponse}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/v1/story/{storyId}/complete [post]
func (h *StoryHandler) CompleteStory(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	storyID := c.Params("storyId")

	var req dto.CompleteStoryRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, err.Error())
	}
	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, formatFirstValidationError(err))
	}

	story, err := h.storySvc.CompleteStory(userID, storyID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", story)
}

// @Summary Import Stories
// @Description Import legacy story documents, normalizing legacy field names
// @Tags story
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ImportStoriesRequest true "Legacy story documents"
// @Success 201 {object} shared.Response{data=dto.ImportStoriesResponse}
// @Failure 400 {object} shared.Response
// @Router /api/v1/story/import [post]
func (h *StoryHandler) ImportStories(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.ImportStoriesRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, err.Error())
	}
	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, formatFirstValidationError(err))
	}

	result, err := h.storySvc.ImportStories(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", result)
}
