package handler

import (
	"github.com/gofiber/fiber/v2"

	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/transport/httpserver/dto"
)

// AdminHandler handles operational requests.
type AdminHandler struct {
	vendors []domain.Vendor
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(vendors []domain.Vendor) *AdminHandler {
	return &AdminHandler{vendors: vendors}
}

// Vendors handles GET /admin/vendors
func (h *AdminHandler) Vendors(c *fiber.Ctx) error {
	return c.JSON(dto.FromVendors(h.vendors))
}
