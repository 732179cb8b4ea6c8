package handlers

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"floor-manager-backend/internal/cache"
	"floor-manager-backend/internal/models"
	"floor-manager-backend/internal/notify"
	"floor-manager-backend/internal/ratelimit"
)

const (
	maxOrderNotesLen = 500
	maxItemNoteLen   = 200
	maxItemQuantity  = 100
)

var tableNumberPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)

// OrderItemRequest is one line of an incoming order. The client sends
// a price for display purposes but it is never trusted; the stored
// price always comes from the menu catalog.
type OrderItemRequest struct {
	MenuItemID uint    `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Note       string  `json:"note"`
}

type CreateOrderRequest struct {
	TableNumber string             `json:"table_number"`
	Notes       string             `json:"notes"`
	Items       []OrderItemRequest `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// OrderHandler bundles what order endpoints need: the database, the
// per-address rate limiter, the query cache and the event broker.
type OrderHandler struct {
	DB      *gorm.DB
	Limiter *ratelimit.Limiter
	Cache   *cache.Store
	Events  *notify.Broker
}

func NewOrderHandler(db *gorm.DB, limiter *ratelimit.Limiter, store *cache.Store, events *notify.Broker) *OrderHandler {
	return &OrderHandler{DB: db, Limiter: limiter, Cache: store, Events: events}
}

// validateCreateOrder applies the format checks that don't need the
// catalog: table number shape, item list presence, quantity bounds and
// non-negative client prices.
func validateCreateOrder(req *CreateOrderRequest) error {
	if !tableNumberPattern.MatchString(req.TableNumber) {
		return errors.New("table_number must be 1-20 characters of letters, digits, hyphen or underscore")
	}
	if len(req.Items) == 0 {
		return errors.New("items must not be empty")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 || item.Quantity > maxItemQuantity {
			return fmt.Errorf("item quantity must be between 1 and %d", maxItemQuantity)
		}
		if item.Price < 0 {
			return errors.New("item price must not be negative")
		}
	}
	return nil
}

// checkCatalog verifies every referenced menu item exists and is
// available. One bad reference rejects the whole order.
func checkCatalog(items []OrderItemRequest, catalog map[uint]models.MenuItem) error {
	for _, item := range items {
		mi, ok := catalog[item.MenuItemID]
		if !ok {
			return errors.New("one or more menu items do not exist")
		}
		if !mi.Available {
			return errors.New("one or more menu items are currently unavailable")
		}
	}
	return nil
}

// orderTotal recomputes the order total strictly from catalog prices,
// ignoring whatever the client submitted.
func orderTotal(items []OrderItemRequest, catalog map[uint]models.MenuItem) float64 {
	var total float64
	for _, item := range items {
		total += catalog[item.MenuItemID].Price * float64(item.Quantity)
	}
	return total
}

// truncateRunes caps s at max runes, leaving shorter strings alone.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// CreateOrder handles order intake: rate limit, validation, catalog
// revalidation, server-side pricing and transactional persistence.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	if !h.Limiter.Allow(c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many orders from this address. Please try again later",
		})
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validateCreateOrder(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// One batch lookup against the authoritative catalog.
	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.MenuItemID)
	}
	var menuItems []models.MenuItem
	if err := h.DB.Where("id IN ?", ids).Find(&menuItems).Error; err != nil {
		log.Printf("Error loading menu items for order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}
	catalog := make(map[uint]models.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		catalog[mi.ID] = mi
	}

	if err := checkCatalog(req.Items, catalog); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	order := models.Order{
		TableNumber: req.TableNumber,
		Notes:       truncateRunes(req.Notes, maxOrderNotesLen),
		Total:       orderTotal(req.Items, catalog),
		Status:      models.OrderPending,
	}

	// Header and line items commit together; a failed line item rolls
	// the header back so no orphan order is left behind.
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			line := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.MenuItemID,
				Quantity:   item.Quantity,
				Note:       truncateRunes(item.Note, maxItemNoteLen),
				Price:      catalog[item.MenuItemID].Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, line)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	h.Cache.Invalidate("orders")
	h.publish(notify.Event{
		Action:      notify.ActionInsert,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Total:       order.Total,
	})

	return c.JSON(fiber.Map{"success": true, "order": order})
}

// GetOrders handles fetching all orders, newest first, through the
// query cache.
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	if cached, ok := h.Cache.Get("orders"); ok {
		return c.JSON(cached)
	}

	var orders []models.Order
	if err := h.DB.Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		log.Printf("Error fetching orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}

	h.Cache.Set("orders", orders)
	return c.JSON(orders)
}

// GetOrder handles fetching a single order with its line items.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var order models.Order
	if err := h.DB.Preload("Items").Preload("Items.MenuItem").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	return c.JSON(order)
}

// UpdateOrderStatus handles moving an order through its lifecycle
// (pending, preparing, ready, completed).
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.ValidOrderStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown order status"})
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	order.Status = req.Status
	if err := h.DB.Save(&order).Error; err != nil {
		log.Printf("Error updating order status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update order"})
	}

	h.Cache.Invalidate("orders")
	h.publish(notify.Event{
		Action:      notify.ActionUpdate,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Total:       order.Total,
	})

	return c.JSON(fiber.Map{"message": "Order updated successfully", "order": order})
}

// DeleteOrder handles hard-deleting an order and its line items.
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		log.Printf("Error deleting order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete order"})
	}

	h.Cache.Invalidate("orders")
	h.publish(notify.Event{Action: notify.ActionDelete, OrderID: order.ID, TableNumber: order.TableNumber})

	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}

// publish sends an order event without failing the request; an order
// that saved but couldn't be announced is still a valid order.
func (h *OrderHandler) publish(ev notify.Event) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(ev); err != nil {
		log.Printf("Error publishing order event: %v", err)
	}
}
