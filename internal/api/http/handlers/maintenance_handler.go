package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/service"
	"github.com/spec-kit/maintenance-service/internal/store"
)

// MaintenanceHandler exposes maintenance plans and manual engine triggers.
type MaintenanceHandler struct {
	maintenance *service.MaintenanceService
	sweep       *service.SweepService
	plans       *store.PlanStore
	directory   *store.TechnicianDirectory
}

// NewMaintenanceHandler constructs the handler.
func NewMaintenanceHandler(maintenance *service.MaintenanceService, sweep *service.SweepService, plans *store.PlanStore, directory *store.TechnicianDirectory) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenance: maintenance,
		sweep:       sweep,
		plans:       plans,
		directory:   directory,
	}
}

// ListPlans GET /maintenance/plans.
func (h *MaintenanceHandler) ListPlans(c *fiber.Ctx) error {
	plans := h.plans.Plans()
	items := make([]dto.MaintenancePlanResponse, 0, len(plans))
	for i := range plans {
		assetName := ""
		if asset, ok := h.plans.AssetByID(plans[i].AssetID); ok {
			assetName = asset.Name
		}
		items = append(items, dto.NewMaintenancePlanResponse(&plans[i], assetName))
	}
	return c.JSON(fiber.Map{"data": items})
}

// RunTick POST /maintenance/tick.
func (h *MaintenanceHandler) RunTick(c *fiber.Ctx) error {
	emitted := h.maintenance.RunMaintenanceTick(c.Context(), time.Now())
	return c.JSON(fiber.Map{"data": dto.TickResultResponse{
		EmittedTickets: h.ticketResponses(emitted),
	}})
}

// RunSweep POST /maintenance/sweep.
func (h *MaintenanceHandler) RunSweep(c *fiber.Ctx) error {
	changed := h.sweep.RunOverdueSweep(c.Context(), time.Now())
	return c.JSON(fiber.Map{"data": dto.TickResultResponse{
		EmittedTickets: []dto.TicketResponse{},
		ChangedTickets: h.ticketResponses(changed),
	}})
}

func (h *MaintenanceHandler) ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		assigneeName := ""
		if tickets[i].AssigneeID != nil {
			if tech, ok := h.directory.ByID(*tickets[i].AssigneeID); ok {
				assigneeName = tech.Name
			}
		}
		items = append(items, dto.NewTicketResponse(&tickets[i], assigneeName))
	}
	return items
}
