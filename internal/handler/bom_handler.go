package handler

import (
	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BOMHandler struct {
	service service.BOMService
}

func NewBOMHandler(s service.BOMService) *BOMHandler {
	return &BOMHandler{service: s}
}

func (h *BOMHandler) CreateBOM(c *fiber.Ctx) error {
	var bom model.BillOfMaterials
	if err := c.BodyParser(&bom); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateBOM(&bom, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "BOM created", "data": bom})
}

func (h *BOMHandler) GetBOMs(c *fiber.Ctx) error {
	branchID, err := branchFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	boms, err := h.service.GetAllBOMs(branchID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(boms)
}

func (h *BOMHandler) SetActive(c *fiber.Ctx) error {
	bomID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid BOM ID"})
	}

	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	bom, err := h.service.SetActive(bomID, body.IsActive, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "BOM updated", "data": bom})
}

func (h *BOMHandler) AttachMenuItems(c *fiber.Ctx) error {
	bomID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid BOM ID"})
	}

	var body struct {
		MenuItemIDs []uuid.UUID `json:"menu_item_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AttachMenuItems(bomID, body.MenuItemIDs); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Menu items attached"})
}
