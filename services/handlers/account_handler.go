package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/shared"
)

type AccountHandler struct {
	accountSvc AccountServiceInterface
}

func NewAccountHandler(accountSvc AccountServiceInterface) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
	}
}

// @Summary Register
// @Description Register a new parent account
// @Tags account
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration"
// @Success 201 {object} shared.Response{data=dto.RegisterResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, err.Error())
	}
	if err := dto.GetValidator().Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	account, err := h.accountSvc.Register(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", account)
}

// @Summary Login
// @Description Exchange credentials for an access token
// @Tags account
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Failure 401 {object} shared.Response
// @Router /api/v1/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewAppError(fiber.StatusBadRequest, err.Error())
	}
	if err := dto.GetValidator().Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	session, err := h.accountSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", session)
}
