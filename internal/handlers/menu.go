package handlers

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"floor-manager-backend/internal/apperrors"
	"floor-manager-backend/internal/cache"
	"floor-manager-backend/internal/models"
)

// MenuItemRequest defines the structure for creating/updating a menu item
type MenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Available   *bool   `json:"available"`
	Popular     *bool   `json:"popular"`
}

// GetMenuItems handles fetching the full menu catalog through the
// query cache.
func GetMenuItems(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cached, ok := store.Get("menu"); ok {
			return c.JSON(cached)
		}

		var items []models.MenuItem
		if err := db.Order("category, name").Find(&items).Error; err != nil {
			log.Printf("Error fetching menu items: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch menu items"})
		}

		store.Set("menu", items)
		return c.JSON(items)
	}
}

// GetMenuItem handles fetching a single menu item by ID
func GetMenuItem(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid menu item ID"})
		}

		var item models.MenuItem
		if err := db.First(&item, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
		}

		return c.JSON(item)
	}
}

// CreateMenuItem handles creating a new menu item
func CreateMenuItem(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req MenuItemRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Name == "" || req.Price <= 0 || req.Category == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, category and a positive price are required"})
		}

		var existing models.MenuItem
		if err := db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A menu item with this name already exists"})
		}

		item := models.MenuItem{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			Available:   true,
		}
		if req.Available != nil {
			item.Available = *req.Available
		}
		if req.Popular != nil {
			item.Popular = *req.Popular
		}

		if err := db.Create(&item).Error; err != nil {
			log.Printf("Error creating menu item: %v", err)
			return apperrors.JSON(c, err)
		}

		store.Invalidate("menu")
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// UpdateMenuItem handles partial updates of a menu item
func UpdateMenuItem(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid menu item ID"})
		}

		var req MenuItemRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		var item models.MenuItem
		if err := db.First(&item, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
		}

		if req.Name != "" {
			item.Name = req.Name
		}
		if req.Description != "" {
			item.Description = req.Description
		}
		if req.Price > 0 {
			item.Price = req.Price
		}
		if req.Category != "" {
			item.Category = req.Category
		}
		if req.Available != nil {
			item.Available = *req.Available
		}
		if req.Popular != nil {
			item.Popular = *req.Popular
		}

		if err := db.Save(&item).Error; err != nil {
			log.Printf("Error updating menu item: %v", err)
			return apperrors.JSON(c, err)
		}

		store.Invalidate("menu")
		return c.JSON(fiber.Map{"message": "Menu item updated successfully", "item": item})
	}
}

// ToggleMenuItemAvailability flips the availability flag of a menu
// item. The caller's cached menu is invalidated so the next fetch
// confirms the change.
func ToggleMenuItemAvailability(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid menu item ID"})
		}

		var item models.MenuItem
		if err := db.First(&item, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
		}

		item.Available = !item.Available
		if err := db.Save(&item).Error; err != nil {
			log.Printf("Error toggling menu item availability: %v", err)
			return apperrors.JSON(c, err)
		}

		store.Invalidate("menu")
		return c.JSON(fiber.Map{"message": "Availability updated", "item": item})
	}
}

// DeleteMenuItem handles deleting a menu item and its stored image
func DeleteMenuItem(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid menu item ID"})
		}

		var item models.MenuItem
		if err := db.First(&item, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
		}

		if item.ImagePath != "" {
			os.Remove(filepath.Join(".", item.ImagePath))
		}

		result := db.Delete(&item)
		if result.Error != nil {
			log.Printf("Error deleting menu item: %v", result.Error)
			return apperrors.JSON(c, result.Error)
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
		}

		store.Invalidate("menu")
		return c.JSON(fiber.Map{"message": "Menu item deleted successfully"})
	}
}
