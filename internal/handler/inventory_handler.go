package handler

import (
	"errors"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
	stock   service.StockService
}

func NewInventoryHandler(s service.InventoryService, stock service.StockService) *InventoryHandler {
	return &InventoryHandler{service: s, stock: stock}
}

// Actor info from JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func getUserEmail(c *fiber.Ctx) string {
	userEmail := c.Locals("user_email")
	if userEmail == nil {
		return ""
	}
	return userEmail.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// branchFromQuery reads ?branch_id=, falling back to the token's branch
func branchFromQuery(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Query("branch_id")
	if raw == "" {
		if v, ok := c.Locals("branch_id").(string); ok {
			raw = v
		}
	}
	if raw == "" {
		return uuid.Nil, errors.New("branch_id is required")
	}
	return uuid.Parse(raw)
}

func (h *InventoryHandler) RecordPurchaseReceipt(c *fiber.Ctx) error {
	var req service.PurchaseReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.RecordPurchaseReceipt(&req, getUserID(c), getUserName(c), getUserEmail(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase receipt recorded", "data": entry})
}

func (h *InventoryHandler) DeductForSale(c *fiber.Ctx) error {
	var req service.SaleDeductionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.DeductForSale(&req, getUserID(c), getUserName(c), getUserEmail(c))
	if err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale deduction recorded", "data": entry})
}

func (h *InventoryHandler) GetStockSnapshot(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	snapshot, err := h.service.GetStockSnapshot(productID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(snapshot)
}

func (h *InventoryHandler) RecordAdjustment(c *fiber.Ctx) error {
	var req service.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.stock.RecordAdjustment(&req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Adjustment recorded", "data": entry})
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	branchID, err := branchFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	transactions, err := h.stock.GetAllTransactions(branchID, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.stock.GetTransactionByID(txID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(tx)
}
