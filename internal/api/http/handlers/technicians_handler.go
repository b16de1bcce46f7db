package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/engine"
	"github.com/spec-kit/maintenance-service/internal/store"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// TechniciansHandler exposes the technician roster.
type TechniciansHandler struct {
	directory *store.TechnicianDirectory
	tickets   *store.TicketStore
}

// NewTechniciansHandler constructs the handler.
func NewTechniciansHandler(directory *store.TechnicianDirectory, tickets *store.TicketStore) *TechniciansHandler {
	return &TechniciansHandler{directory: directory, tickets: tickets}
}

// ListTechnicians GET /technicians.
func (h *TechniciansHandler) ListTechnicians(c *fiber.Ctx) error {
	all := h.tickets.List()
	technicians := h.directory.List()
	items := make([]dto.TechnicianResponse, 0, len(technicians))
	for _, tech := range technicians {
		items = append(items, dto.TechnicianResponse{
			ID:           tech.ID,
			Name:         tech.Name,
			Email:        tech.Email,
			Role:         tech.Role,
			Active:       tech.Active,
			Availability: tech.Availability,
			Skills:       tech.Skills,
			OpenLoad:     engine.Load(tech.ID, all),
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// SetAvailability PATCH /technicians/:id/availability.
func (h *TechniciansHandler) SetAvailability(c *fiber.Ctx) error {
	var req dto.SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	switch req.Availability {
	case domain.AvailabilityAvailable, domain.AvailabilityOnLeave, domain.AvailabilityUnavailable:
	default:
		return apperrors.NewValidationError("unknown availability", map[string]any{"availability": req.Availability})
	}
	if !h.directory.SetAvailability(c.Params("id"), req.Availability) {
		return apperrors.NewNotFound("technician", map[string]any{"technician_id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "availability": req.Availability}})
}
