package handler

import (
	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.InventoryService
}

func NewProductHandler(s service.InventoryService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(productID, &product, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

// GetProducts lists the branch's products with their live stock snapshots
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	branchID, err := branchFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	products, err := h.service.GetAllProducts(branchID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}
