package handler

import (
	"time"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductionHandler struct {
	service service.ProductionService
}

func NewProductionHandler(s service.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: s}
}

// RunProduction triggers a staff-initiated production run
func (h *ProductionHandler) RunProduction(c *fiber.Ctx) error {
	var body struct {
		BOMID    uuid.UUID `json:"bom_id"`
		Batches  float64   `json:"batches"`
		BranchID uuid.UUID `json:"branch_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if body.BOMID == uuid.Nil || body.BranchID == uuid.Nil {
		return c.Status(400).JSON(fiber.Map{"error": "bom_id and branch_id are required"})
	}

	run, err := h.service.RunManualProduction(body.BOMID, body.Batches, body.BranchID, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Production completed", "data": run})
}

func (h *ProductionHandler) GetProductions(c *fiber.Ctx) error {
	branchID, err := branchFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, -1, 0)
	if raw := c.Query("start_date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			startDate = parsed
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			endDate = parsed.AddDate(0, 0, 1) // inclusive end day
		}
	}

	productions, err := h.service.GetAllProductions(branchID, startDate, endDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(productions)
}
