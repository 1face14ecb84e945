package handler

import (
	"time"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	stock service.StockService
}

func NewReportHandler(stock service.StockService) *ReportHandler {
	return &ReportHandler{stock: stock}
}

// GetStockMovement returns per-day inbound/outbound volume for the chart
func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	branchID, err := branchFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	rangeParam := c.Query("range", "7d")
	now := time.Now()
	var startDate time.Time

	switch rangeParam {
	case "7d":
		startDate = now.AddDate(0, 0, -7)
	case "1m":
		startDate = now.AddDate(0, -1, 0)
	case "3m":
		startDate = now.AddDate(0, -3, 0)
	default:
		startDate = now.AddDate(0, 0, -7)
	}

	movement, err := h.stock.StockMovement(branchID, startDate, now)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(movement)
}

// GetLowStock lists products whose derived status is low or out of stock
func (h *ReportHandler) GetLowStock(c *fiber.Ctx) error {
	branchID, err := branchFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	products, err := h.stock.LowStock(branchID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(products)
}
