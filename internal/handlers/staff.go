package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"floor-manager-backend/internal/apperrors"
	"floor-manager-backend/internal/models"
)

// StaffRequest defines the structure for creating/updating a staff member
type StaffRequest struct {
	Name   string             `json:"name" validate:"required"`
	Phone  string             `json:"phone"`
	Email  string             `json:"email"`
	Role   string             `json:"role" validate:"required"`
	Status models.StaffStatus `json:"status"`
}

// GetStaffMembers handles fetching all staff members
func GetStaffMembers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staff []models.StaffMember
		if err := db.Order("name").Find(&staff).Error; err != nil {
			log.Printf("Error fetching staff members: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch staff members"})
		}
		return c.JSON(staff)
	}
}

// CreateStaffMember handles creating a new staff member
func CreateStaffMember(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req StaffRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Name == "" || req.Role == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and role are required"})
		}

		member := models.StaffMember{
			Name:   req.Name,
			Phone:  req.Phone,
			Email:  req.Email,
			Role:   req.Role,
			Status: models.StaffActive,
		}
		if req.Status != "" {
			if !models.ValidStaffStatus(req.Status) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown staff status"})
			}
			member.Status = req.Status
		}

		if err := db.Create(&member).Error; err != nil {
			log.Printf("Error creating staff member: %v", err)
			return apperrors.JSON(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(member)
	}
}

// UpdateStaffMember handles updating a staff member's details
func UpdateStaffMember(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid staff member ID"})
		}

		var req StaffRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		var member models.StaffMember
		if err := db.First(&member, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
		}

		if req.Name != "" {
			member.Name = req.Name
		}
		if req.Phone != "" {
			member.Phone = req.Phone
		}
		if req.Email != "" {
			member.Email = req.Email
		}
		if req.Role != "" {
			member.Role = req.Role
		}
		if req.Status != "" {
			if !models.ValidStaffStatus(req.Status) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown staff status"})
			}
			member.Status = req.Status
		}

		if err := db.Save(&member).Error; err != nil {
			log.Printf("Error updating staff member: %v", err)
			return apperrors.JSON(c, err)
		}

		return c.JSON(fiber.Map{"message": "Staff member updated successfully", "staff": member})
	}
}

// DeleteStaffMember handles deleting a staff member
func DeleteStaffMember(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid staff member ID"})
		}

		result := db.Delete(&models.StaffMember{}, id)
		if result.Error != nil {
			log.Printf("Error deleting staff member: %v", result.Error)
			return apperrors.JSON(c, result.Error)
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
		}

		return c.JSON(fiber.Map{"message": "Staff member deleted successfully"})
	}
}
