package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"floor-manager-backend/internal/cache"
	"floor-manager-backend/internal/database"
	"floor-manager-backend/internal/handlers"
	"floor-manager-backend/internal/middleware"
	"floor-manager-backend/internal/models"
	"floor-manager-backend/internal/notify"
	"floor-manager-backend/internal/ratelimit"
)

func main() {
	// 1. Load .env first
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment")
	}

	// 2. Connect database
	database.Connect()

	// 3. Shared infrastructure: query cache, order rate limiter and
	// the order event broker. The broker is optional so the API still
	// runs without RabbitMQ.
	store := cache.New(time.Minute)
	limiter := ratelimit.New(10, time.Hour)

	var broker *notify.Broker
	var subscriber *notify.Subscriber
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		b, err := notify.Connect(url)
		if err != nil {
			log.Printf("Warning: could not connect to RabbitMQ, order notifications disabled: %v", err)
		} else {
			broker = b
			subscriber = notify.NewSubscriber(broker, store, func(ev notify.Event) {
				log.Printf("New order for table %s, total %.2f", ev.TableNumber, ev.Total)
			})
			if err := subscriber.Start(); err != nil {
				log.Printf("Warning: could not start order event subscriber: %v", err)
			}
		}
	} else {
		log.Println("RABBITMQ_URL not set, order notifications disabled")
	}

	app := fiber.New()
	app.Use(logger.New())

	// Generated menu images are served as static files.
	app.Static("/public/uploads", "./public/uploads")

	// 4. API endpoints
	authHandler := handlers.NewAuthHandler(database.DB)
	orderHandler := handlers.NewOrderHandler(database.DB, limiter, store, broker)

	api := app.Group("/api/v1")

	// === PUBLIC ROUTES ===
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "Running", "message": "API Ready"})
	})
	api.Post("/login", authHandler.Login)

	// === PROTECTED ROUTES (JWT) ===
	api.Use(middleware.JWTProtected())

	// User profile
	api.Get("/me", authHandler.GetProfile)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.RoleProtected(models.RoleAdmin))
	admin.Post("/register", authHandler.Register)
	admin.Get("/users", handlers.GetUsers(database.DB))
	admin.Put("/users/:id", handlers.UpdateUser(database.DB))
	admin.Delete("/users/:id", handlers.DeleteUser(database.DB))

	// Menu routes: everyone reads, managers edit
	menu := api.Group("/menu")
	menu.Get("", handlers.GetMenuItems(database.DB, store))
	menu.Get("/:id", handlers.GetMenuItem(database.DB))

	menuAdmin := menu.Group("")
	menuAdmin.Use(middleware.RoleProtected(models.RoleManager, models.RoleAdmin))
	menuAdmin.Post("", handlers.CreateMenuItem(database.DB, store))
	menuAdmin.Post("/images", handlers.GenerateMenuItemImage(database.DB, store))
	menuAdmin.Put("/:id", handlers.UpdateMenuItem(database.DB, store))
	menuAdmin.Patch("/:id/availability", handlers.ToggleMenuItemAvailability(database.DB, store))
	menuAdmin.Delete("/:id", handlers.DeleteMenuItem(database.DB, store))

	// Order routes
	orders := api.Group("/orders")
	orders.Post("", orderHandler.CreateOrder)
	orders.Get("", orderHandler.GetOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Patch("/:id/status", orderHandler.UpdateOrderStatus)
	orders.Delete("/:id", middleware.RoleProtected(models.RoleManager, models.RoleAdmin), orderHandler.DeleteOrder)

	// Floor table routes
	tables := api.Group("/tables")
	tables.Get("", handlers.GetFloorTables(database.DB, store))
	tables.Patch("/:id/status", handlers.UpdateTableStatus(database.DB, store))

	tablesAdmin := tables.Group("")
	tablesAdmin.Use(middleware.RoleProtected(models.RoleManager, models.RoleAdmin))
	tablesAdmin.Post("", handlers.CreateFloorTable(database.DB, store))
	tablesAdmin.Put("/:id", handlers.UpdateFloorTable(database.DB, store))
	tablesAdmin.Delete("/:id", handlers.DeleteFloorTable(database.DB, store))

	// Reservation routes
	reservations := api.Group("/reservations")
	reservations.Get("", handlers.GetReservations(database.DB, store))
	reservations.Post("", handlers.CreateReservation(database.DB, store))
	reservations.Put("/:id", handlers.UpdateReservation(database.DB, store))
	reservations.Patch("/:id/status", handlers.UpdateReservationStatus(database.DB, store))
	reservations.Delete("/:id", handlers.DeleteReservation(database.DB, store))

	// Staff routes (managers and admins)
	staff := api.Group("/staff")
	staff.Use(middleware.RoleProtected(models.RoleManager, models.RoleAdmin))
	staff.Get("", handlers.GetStaffMembers(database.DB))
	staff.Post("", handlers.CreateStaffMember(database.DB))
	staff.Put("/:id", handlers.UpdateStaffMember(database.DB))
	staff.Delete("/:id", handlers.DeleteStaffMember(database.DB))

	// Finance routes (managers and admins)
	transactions := api.Group("/transactions")
	transactions.Use(middleware.RoleProtected(models.RoleManager, models.RoleAdmin))
	transactions.Get("", handlers.GetTransactions(database.DB))
	transactions.Post("", handlers.CreateTransaction(database.DB))
	transactions.Put("/:id", handlers.UpdateTransaction(database.DB))
	transactions.Delete("/:id", handlers.DeleteTransaction(database.DB))

	reportsGroup := api.Group("/reports")
	reportsGroup.Use(middleware.RoleProtected(models.RoleManager, models.RoleAdmin))
	reportsGroup.Get("/financial", handlers.GetFinancialReport(database.DB))

	// 5. Run until interrupted
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Println("Server running on port :" + port)
		return app.Listen(":" + port)
	})
	g.Go(func() error {
		<-ctx.Done()
		if subscriber != nil {
			subscriber.Stop()
		}
		if broker != nil {
			broker.Close()
		}
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
