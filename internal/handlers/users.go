package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"floor-manager-backend/internal/middleware"
	"floor-manager-backend/internal/models"
)

// UserResponse defines the structure for user data sent to the client
type UserResponse struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
}

// UpdateUserRequest defines the structure for updating a user
type UpdateUserRequest struct {
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Password string      `json:"password,omitempty"` // Password is optional
	Role     models.Role `json:"role"`
}

// GetUsers handles fetching all users with their roles
func GetUsers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := db.Find(&users).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
		}

		var roles []models.UserRole
		if err := db.Find(&roles).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
		}
		roleByUser := make(map[uint]models.Role, len(roles))
		for _, r := range roles {
			roleByUser[r.UserID] = r.Role
		}

		var response []UserResponse
		for _, user := range users {
			role, ok := roleByUser[user.ID]
			if !ok {
				role = models.RoleStaff
			}
			response = append(response, UserResponse{
				ID:       user.ID,
				Username: user.Username,
				Name:     user.Name,
				Role:     role,
			})
		}

		return c.JSON(response)
	}
}

// UpdateUser handles updating a user's details and role
func UpdateUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
		}

		var req UpdateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		if req.Username != "" {
			user.Username = req.Username
		}
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Password != "" {
			hashedPassword, err := middleware.HashPassword(req.Password)
			if err != nil {
				log.Printf("Error hashing password: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error processing password"})
			}
			user.Password = hashedPassword
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
			if req.Role == "" {
				return nil
			}
			if !models.ValidRole(req.Role) {
				return gorm.ErrInvalidData
			}
			var userRole models.UserRole
			if err := tx.Where("user_id = ?", user.ID).First(&userRole).Error; err != nil {
				if err != gorm.ErrRecordNotFound {
					return err
				}
				return tx.Create(&models.UserRole{UserID: user.ID, Role: req.Role}).Error
			}
			userRole.Role = req.Role
			return tx.Save(&userRole).Error
		})
		if err != nil {
			if err == gorm.ErrInvalidData {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Role must be one of: staff, manager, admin"})
			}
			log.Printf("Error updating user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
		}

		return c.JSON(fiber.Map{"message": "User updated successfully"})
	}
}

// DeleteUser handles deleting a user and its role association
func DeleteUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.User{}, id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			}
			log.Printf("Error deleting user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
		}

		return c.JSON(fiber.Map{"message": "User deleted successfully"})
	}
}
