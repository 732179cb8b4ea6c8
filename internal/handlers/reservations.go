package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"floor-manager-backend/internal/apperrors"
	"floor-manager-backend/internal/cache"
	"floor-manager-backend/internal/models"
)

// ReservationRequest defines the structure for creating/updating a reservation
type ReservationRequest struct {
	CustomerName string    `json:"customer_name" validate:"required"`
	Phone        string    `json:"phone" validate:"required"`
	Email        string    `json:"email"`
	Date         time.Time `json:"date" validate:"required"`
	Guests       int       `json:"guests" validate:"required,gt=0"`
	TableID      *uint     `json:"table_id"`
}

type UpdateReservationStatusRequest struct {
	Status models.ReservationStatus `json:"status" validate:"required"`
}

// GetReservations handles fetching reservations, optionally filtered
// by day (?date=YYYY-MM-DD). Per-day lists are cached under
// "reservations:DATE".
func GetReservations(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dateStr := c.Query("date")
		cacheKey := "reservations"
		if dateStr != "" {
			cacheKey = "reservations:" + dateStr
		}

		if cached, ok := store.Get(cacheKey); ok {
			return c.JSON(cached)
		}

		query := db.Preload("Table").Order("date")
		if dateStr != "" {
			day, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
			}
			query = query.Where("date >= ? AND date < ?", day, day.AddDate(0, 0, 1))
		}

		var reservations []models.Reservation
		if err := query.Find(&reservations).Error; err != nil {
			log.Printf("Error fetching reservations: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reservations"})
		}

		store.Set(cacheKey, reservations)
		return c.JSON(reservations)
	}
}

// CreateReservation handles creating a new reservation
func CreateReservation(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ReservationRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.CustomerName == "" || req.Phone == "" || req.Date.IsZero() || req.Guests <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Customer name, phone, date and guest count are required"})
		}

		reservation := models.Reservation{
			CustomerName: req.CustomerName,
			Phone:        req.Phone,
			Email:        req.Email,
			Date:         req.Date,
			Guests:       req.Guests,
			TableID:      req.TableID,
			Status:       models.ReservationPending,
		}

		if err := db.Create(&reservation).Error; err != nil {
			log.Printf("Error creating reservation: %v", err)
			return apperrors.JSON(c, err)
		}

		store.InvalidatePrefix("reservations")
		return c.Status(fiber.StatusCreated).JSON(reservation)
	}
}

// UpdateReservation handles updating a reservation's details
func UpdateReservation(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation ID"})
		}

		var req ReservationRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		var reservation models.Reservation
		if err := db.First(&reservation, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reservation not found"})
		}

		if req.CustomerName != "" {
			reservation.CustomerName = req.CustomerName
		}
		if req.Phone != "" {
			reservation.Phone = req.Phone
		}
		if req.Email != "" {
			reservation.Email = req.Email
		}
		if !req.Date.IsZero() {
			reservation.Date = req.Date
		}
		if req.Guests > 0 {
			reservation.Guests = req.Guests
		}
		if req.TableID != nil {
			reservation.TableID = req.TableID
		}

		if err := db.Save(&reservation).Error; err != nil {
			log.Printf("Error updating reservation: %v", err)
			return apperrors.JSON(c, err)
		}

		store.InvalidatePrefix("reservations")
		return c.JSON(fiber.Map{"message": "Reservation updated successfully", "reservation": reservation})
	}
}

// UpdateReservationStatus handles moving a reservation through its
// lifecycle (pending, confirmed, seated, completed, cancelled).
func UpdateReservationStatus(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation ID"})
		}

		var req UpdateReservationStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if !models.ValidReservationStatus(req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown reservation status"})
		}

		var reservation models.Reservation
		if err := db.First(&reservation, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reservation not found"})
		}

		reservation.Status = req.Status
		if err := db.Save(&reservation).Error; err != nil {
			log.Printf("Error updating reservation status: %v", err)
			return apperrors.JSON(c, err)
		}

		store.InvalidatePrefix("reservations")
		return c.JSON(fiber.Map{"message": "Reservation updated successfully", "reservation": reservation})
	}
}

// DeleteReservation handles deleting a reservation
func DeleteReservation(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation ID"})
		}

		result := db.Delete(&models.Reservation{}, id)
		if result.Error != nil {
			log.Printf("Error deleting reservation: %v", result.Error)
			return apperrors.JSON(c, result.Error)
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reservation not found"})
		}

		store.InvalidatePrefix("reservations")
		return c.JSON(fiber.Map{"message": "Reservation deleted successfully"})
	}
}
