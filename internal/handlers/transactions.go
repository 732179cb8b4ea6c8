package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"floor-manager-backend/internal/apperrors"
	"floor-manager-backend/internal/models"
)

// TransactionRequest defines the structure for creating/updating a
// financial transaction
type TransactionRequest struct {
	Type          models.TransactionType `json:"type" validate:"required,oneof=income expense"`
	Category      string                 `json:"category" validate:"required"`
	Description   string                 `json:"description"`
	Amount        float64                `json:"amount" validate:"required,gt=0"`
	Date          time.Time              `json:"date" validate:"required"`
	PaymentMethod string                 `json:"payment_method"`
	Reference     string                 `json:"reference"`
	Notes         string                 `json:"notes"`
}

// GetTransactions handles fetching transactions, newest first
func GetTransactions(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var txs []models.Transaction
		if err := db.Order("date desc").Find(&txs).Error; err != nil {
			log.Printf("Error fetching transactions: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transactions"})
		}
		return c.JSON(txs)
	}
}

// CreateTransaction handles creating a new income/expense entry
func CreateTransaction(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req TransactionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if !models.ValidTransactionType(req.Type) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type must be income or expense"})
		}
		if req.Category == "" || req.Amount <= 0 || req.Date.IsZero() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category, a positive amount and a date are required"})
		}

		tx := models.Transaction{
			Type:          req.Type,
			Category:      req.Category,
			Description:   req.Description,
			Amount:        req.Amount,
			Date:          req.Date,
			PaymentMethod: req.PaymentMethod,
			Reference:     req.Reference,
			Notes:         req.Notes,
		}

		if err := db.Create(&tx).Error; err != nil {
			log.Printf("Error creating transaction: %v", err)
			return apperrors.JSON(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(tx)
	}
}

// UpdateTransaction handles updating a transaction entry
func UpdateTransaction(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
		}

		var req TransactionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		var tx models.Transaction
		if err := db.First(&tx, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}

		if req.Type != "" {
			if !models.ValidTransactionType(req.Type) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type must be income or expense"})
			}
			tx.Type = req.Type
		}
		if req.Category != "" {
			tx.Category = req.Category
		}
		if req.Description != "" {
			tx.Description = req.Description
		}
		if req.Amount > 0 {
			tx.Amount = req.Amount
		}
		if !req.Date.IsZero() {
			tx.Date = req.Date
		}
		if req.PaymentMethod != "" {
			tx.PaymentMethod = req.PaymentMethod
		}
		if req.Reference != "" {
			tx.Reference = req.Reference
		}
		if req.Notes != "" {
			tx.Notes = req.Notes
		}

		if err := db.Save(&tx).Error; err != nil {
			log.Printf("Error updating transaction: %v", err)
			return apperrors.JSON(c, err)
		}

		return c.JSON(fiber.Map{"message": "Transaction updated successfully", "transaction": tx})
	}
}

// DeleteTransaction handles deleting a transaction entry
func DeleteTransaction(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
		}

		result := db.Delete(&models.Transaction{}, id)
		if result.Error != nil {
			log.Printf("Error deleting transaction: %v", result.Error)
			return apperrors.JSON(c, result.Error)
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}

		return c.JSON(fiber.Map{"message": "Transaction deleted successfully"})
	}
}
