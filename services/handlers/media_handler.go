package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dongeng-kita/dongeng_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload Story Cover
// @Description Upload a cover image for a story
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param storyId path string true "Story ID"
// @Param file formData file true "Cover image (png, jpg, webp)"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/v1/story/{storyId}/cover [post]
func (h *MediaHandler) UploadStoryCover(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	storyID := c.Params("storyId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, "cover image file is required")
	}

	upload, err := h.mediaSvc.UploadStoryCover(userID, storyID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", upload)
}

// @Summary Get Story Cover
// @Description Get a presigned URL for a story's cover image
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storyId path string true "Story ID"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/story/{storyId}/cover [get]
func (h *MediaHandler) GetStoryCover(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	storyID := c.Params("storyId")

	cover, err := h.mediaSvc.GetStoryCover(userID, storyID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", cover)
}
