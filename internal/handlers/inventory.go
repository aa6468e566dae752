package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medhive/pharmacy-admin/internal/middleware"
	"github.com/medhive/pharmacy-admin/internal/services"
)

// GetStoreInventory lists a store's inventory via the remote API
// GET /api/stores/:id/inventory
func (h *Handler) GetStoreInventory(c *fiber.Ctx) error {
	storeID := c.Params("id")
	if storeID == "" {
		return Error(c, fiber.StatusBadRequest, "store id is required")
	}
	if !middleware.CanAccessStore(c, storeID) {
		return Error(c, fiber.StatusForbidden, "store access denied")
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	search := c.Query("search")

	api := h.api.ForToken(middleware.GetSessionToken(c))
	page, err := api.StoreInventory(c.Context(), storeID, search, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			return Error(c, fiber.StatusUnauthorized, "session rejected by inventory service")
		case errors.Is(err, services.ErrStoreNotFound):
			return Error(c, fiber.StatusNotFound, "store not found")
		default:
			return Error(c, fiber.StatusBadGateway, "inventory service unavailable")
		}
	}

	return SuccessWithMeta(c, page.Items, page.Total, limit, offset)
}
