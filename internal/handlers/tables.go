package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"floor-manager-backend/internal/apperrors"
	"floor-manager-backend/internal/cache"
	"floor-manager-backend/internal/models"
)

// FloorTableRequest defines the structure for creating/updating a floor table
type FloorTableRequest struct {
	Number string             `json:"number" validate:"required"`
	Seats  int                `json:"seats" validate:"required,gt=0"`
	Status models.TableStatus `json:"status"`
}

type UpdateTableStatusRequest struct {
	Status models.TableStatus `json:"status" validate:"required"`
}

// GetFloorTables handles fetching all floor tables through the query cache
func GetFloorTables(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cached, ok := store.Get("tables"); ok {
			return c.JSON(cached)
		}

		var tables []models.FloorTable
		if err := db.Order("number").Find(&tables).Error; err != nil {
			log.Printf("Error fetching floor tables: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch floor tables"})
		}

		store.Set("tables", tables)
		return c.JSON(tables)
	}
}

// CreateFloorTable handles creating a new floor table
func CreateFloorTable(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req FloorTableRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Number == "" || req.Seats <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Table number and a positive seat count are required"})
		}

		var existing models.FloorTable
		if err := db.Where("number = ?", req.Number).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A table with this number already exists"})
		}

		table := models.FloorTable{
			Number: req.Number,
			Seats:  req.Seats,
			Status: models.TableAvailable,
		}
		if req.Status != "" {
			if !models.ValidTableStatus(req.Status) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown table status"})
			}
			table.Status = req.Status
		}

		if err := db.Create(&table).Error; err != nil {
			log.Printf("Error creating floor table: %v", err)
			return apperrors.JSON(c, err)
		}

		store.Invalidate("tables")
		return c.Status(fiber.StatusCreated).JSON(table)
	}
}

// UpdateFloorTable handles updating a floor table's number and seats
func UpdateFloorTable(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid table ID"})
		}

		var req FloorTableRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		var table models.FloorTable
		if err := db.First(&table, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Floor table not found"})
		}

		if req.Number != "" {
			table.Number = req.Number
		}
		if req.Seats > 0 {
			table.Seats = req.Seats
		}
		if req.Status != "" {
			if !models.ValidTableStatus(req.Status) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown table status"})
			}
			table.Status = req.Status
		}

		if err := db.Save(&table).Error; err != nil {
			log.Printf("Error updating floor table: %v", err)
			return apperrors.JSON(c, err)
		}

		store.Invalidate("tables")
		return c.JSON(fiber.Map{"message": "Floor table updated successfully", "table": table})
	}
}

// UpdateTableStatus handles the quick status change from the floor
// view. The cached table list gets the new status applied
// optimistically and is rolled back if the database rejects the write.
func UpdateTableStatus(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid table ID"})
		}

		var req UpdateTableStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if !models.ValidTableStatus(req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown table status"})
		}

		var table models.FloorTable
		if err := db.First(&table, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Floor table not found"})
		}

		txn := store.Begin("tables")
		defer txn.Rollback()
		if cached, ok := store.Get("tables"); ok {
			if tables, ok := cached.([]models.FloorTable); ok {
				txn.Apply(withTableStatus(tables, table.ID, req.Status))
			}
		}

		table.Status = req.Status
		if err := db.Save(&table).Error; err != nil {
			log.Printf("Error updating table status: %v", err)
			return apperrors.JSON(c, err)
		}
		txn.Commit()

		return c.JSON(fiber.Map{"message": "Table status updated", "table": table})
	}
}

// withTableStatus returns a copy of tables with the matching table's
// status replaced.
func withTableStatus(tables []models.FloorTable, id uint, status models.TableStatus) []models.FloorTable {
	out := make([]models.FloorTable, len(tables))
	copy(out, tables)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = status
		}
	}
	return out
}

// DeleteFloorTable handles deleting a floor table. No check is made
// against open orders or reservations referencing the table.
func DeleteFloorTable(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid table ID"})
		}

		result := db.Delete(&models.FloorTable{}, id)
		if result.Error != nil {
			log.Printf("Error deleting floor table: %v", result.Error)
			return apperrors.JSON(c, result.Error)
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Floor table not found"})
		}

		store.Invalidate("tables")
		return c.JSON(fiber.Map{"message": "Floor table deleted successfully"})
	}
}
