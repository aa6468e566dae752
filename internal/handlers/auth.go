package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medhive/pharmacy-admin/internal/middleware"
	"github.com/medhive/pharmacy-admin/internal/models"
	"github.com/medhive/pharmacy-admin/internal/services"
)

// Login delegates phone/email sign-in to the remote auth service
// POST /api/auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" && req.Email == "" {
		return Error(c, fiber.StatusBadRequest, "phone or email is required")
	}
	if req.Password == "" {
		return Error(c, fiber.StatusBadRequest, "password is required")
	}

	resp, err := h.api.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return Error(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return Error(c, fiber.StatusBadGateway, "auth service unavailable")
	}

	return Success(c, resp)
}

// Me returns the current session
// GET /api/auth/me
func (h *Handler) Me(c *fiber.Ctx) error {
	return Success(c, models.SessionUser{
		ID:      middleware.GetUserID(c),
		StoreID: middleware.GetStoreID(c),
		Role:    middleware.GetUserRole(c),
	})
}
