package handler

import (
	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UnitHandler struct {
	service service.UnitService
}

func NewUnitHandler(s service.UnitService) *UnitHandler {
	return &UnitHandler{service: s}
}

func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	var unit model.UnitOfMeasurement
	if err := c.BodyParser(&unit); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateUnit(&unit, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Unit created", "data": unit})
}

func (h *UnitHandler) GetUnits(c *fiber.Ctx) error {
	branchID, err := branchFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	units, err := h.service.GetAllUnits(branchID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(units)
}
