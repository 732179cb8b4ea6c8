package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"floor-manager-backend/internal/cache"
	"floor-manager-backend/internal/models"
)

const uploadsDir = "./public/uploads/menu"

// imageClient talks to the external image generation gateway. The 30s
// timeout covers generation latency, not just transfer.
var imageClient = &http.Client{Timeout: 30 * time.Second}

// GenerateImageRequest defines the structure for requesting a menu
// item image
type GenerateImageRequest struct {
	MenuItemID  uint   `json:"menu_item_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type gatewayRequest struct {
	Prompt string `json:"prompt"`
}

type gatewayResponse struct {
	URL string `json:"url"`
}

// GenerateMenuItemImage proxies an image generation request to the
// external gateway, stores the result under the uploads directory and
// writes the path back to the catalog row. The gateway key never
// reaches clients; it is read from the server environment only.
func GenerateMenuItemImage(db *gorm.DB, store *cache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gatewayURL := os.Getenv("AI_GATEWAY_URL")
		gatewayKey := os.Getenv("AI_GATEWAY_KEY")
		if gatewayURL == "" || gatewayKey == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Image generation is not configured"})
		}

		var req GenerateImageRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.MenuItemID == 0 || req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "menu_item_id and name are required"})
		}

		var item models.MenuItem
		if err := db.First(&item, req.MenuItemID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
		}

		prompt := fmt.Sprintf("Professional food photography of %s", req.Name)
		if req.Description != "" {
			prompt += ": " + req.Description
		}
		if req.Category != "" {
			prompt += " (" + req.Category + ")"
		}

		imageURL, err := requestImage(gatewayURL, gatewayKey, prompt)
		if err != nil {
			log.Printf("Error requesting image generation: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Image generation failed"})
		}

		imagePath, err := downloadImage(imageURL)
		if err != nil {
			log.Printf("Error storing generated image: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store generated image"})
		}

		// Replace the previous image, if any.
		if item.ImagePath != "" {
			os.Remove(filepath.Join(".", item.ImagePath))
		}

		item.ImagePath = imagePath
		if err := db.Save(&item).Error; err != nil {
			log.Printf("Error updating menu item image: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update menu item"})
		}

		store.Invalidate("menu")
		return c.JSON(fiber.Map{"success": true, "image_url": imagePath})
	}
}

// requestImage asks the gateway for an image and returns the URL it
// was generated at.
func requestImage(gatewayURL, key, prompt string) (string, error) {
	body, err := json.Marshal(gatewayRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequest(http.MethodPost, gatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+key)

	resp, err := imageClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var gw gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		return "", err
	}
	if gw.URL == "" {
		return "", fmt.Errorf("gateway returned no image URL")
	}
	return gw.URL, nil
}

// downloadImage fetches the generated image and writes it under the
// uploads directory, returning the public path.
func downloadImage(url string) (string, error) {
	resp, err := imageClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ".png"
	savePath := filepath.Join(uploadsDir, filename)
	if err := os.WriteFile(savePath, data, 0o644); err != nil {
		return "", err
	}

	return "/public/uploads/menu/" + filename, nil
}
