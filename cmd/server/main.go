package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/crossbox/wodtracker/internal/config"
	"github.com/crossbox/wodtracker/internal/database"
	"github.com/crossbox/wodtracker/internal/handlers"
	"github.com/crossbox/wodtracker/internal/middleware"
	"github.com/crossbox/wodtracker/internal/services"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/utils"

	_ "github.com/crossbox/wodtracker/docs/api" // Swagger docs
)

// @title WODTracker API
// @version 1.0.0
// @description CrossFit workout tracking service: workout logs, personal records, exercise catalog, training groups and scheduled group workouts
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/crossbox/wodtracker
// @contact.email dev@crossbox.fit

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session_token

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Build the entity store for the configured backend
	var st store.Store
	if cfg.StorageBackend == "memory" {
		st = store.NewMemoryStore()
		log.Printf("Using in-memory storage (ephemeral)")
	} else {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		st = store.NewGormStore(db)
	}

	// Seed the demo exercise catalog
	if cfg.SeedDemoData {
		existing, err := st.GetAllExercises()
		if err != nil {
			log.Fatalf("Failed to check exercise catalog: %v", err)
		}
		if len(existing) == 0 {
			if err := store.SeedExercises(st); err != nil {
				log.Fatalf("Failed to seed exercise catalog: %v", err)
			}
			log.Printf("Seeded demo exercise catalog")
		}
	}

	sessions := services.NewSessionManager(cfg.SessionTTL)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("wodtracker")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	authRequired := middleware.AuthRequired(sessions, st)

	// Handlers
	authHandler := &handlers.AuthHandler{Store: st, Sessions: sessions}
	userHandler := &handlers.UserHandler{Store: st}
	workoutHandler := &handlers.WorkoutHandler{Store: st}
	exerciseHandler := &handlers.ExerciseHandler{Store: st}
	recordHandler := &handlers.RecordHandler{Store: st}
	groupHandler := &handlers.GroupHandler{Store: st}
	scheduleHandler := &handlers.ScheduleHandler{Store: st}

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authRequired, authHandler.Me)

	// Users
	users := api.Group("/users", authRequired)
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	// Workout log
	workouts := api.Group("/workouts", authRequired)
	workouts.Post("/", workoutHandler.CreateWorkout)
	workouts.Get("/", workoutHandler.ListWorkouts)
	workouts.Get("/:id", workoutHandler.GetWorkout)
	workouts.Put("/:id", workoutHandler.UpdateWorkout)
	workouts.Delete("/:id", workoutHandler.DeleteWorkout)

	// Exercise catalog
	exercises := api.Group("/exercises", authRequired)
	exercises.Get("/", exerciseHandler.ListExercises)
	exercises.Get("/search", exerciseHandler.SearchExercises)
	exercises.Get("/:id", exerciseHandler.GetExercise)
	exercises.Post("/", exerciseHandler.CreateExercise)
	exercises.Put("/:id", exerciseHandler.UpdateExercise)
	exercises.Delete("/:id", exerciseHandler.DeleteExercise)

	// Personal records
	records := api.Group("/records", authRequired)
	records.Post("/", recordHandler.CreateRecord)
	records.Get("/", recordHandler.ListRecords)
	records.Get("/recent", recordHandler.RecentRecords)
	records.Get("/exercise/:exerciseId", recordHandler.RecordsByExercise)
	records.Put("/:id", recordHandler.UpdateRecord)
	records.Delete("/:id", recordHandler.DeleteRecord)

	// Training groups and membership
	groups := api.Group("/groups", authRequired)
	groups.Post("/", groupHandler.CreateGroup)
	groups.Get("/", groupHandler.ListGroups)
	groups.Get("/:id", groupHandler.GetGroup)
	groups.Put("/:id", groupHandler.UpdateGroup)
	groups.Delete("/:id", groupHandler.DeleteGroup)
	groups.Get("/:id/members", groupHandler.GetMembers)
	groups.Post("/:id/members", groupHandler.AddMember)
	groups.Delete("/:id/members/:userId", groupHandler.RemoveMember)
	groups.Post("/:id/schedule", scheduleHandler.ScheduleWorkout)
	groups.Get("/:id/schedule", scheduleHandler.ListGroupSchedule)

	// Scheduled workouts and results
	schedule := api.Group("/schedule", authRequired)
	schedule.Get("/upcoming", scheduleHandler.UpcomingWorkouts)
	schedule.Put("/:id", scheduleHandler.UpdateScheduledWorkout)
	schedule.Delete("/:id", scheduleHandler.DeleteScheduledWorkout)
	schedule.Post("/:id/results", scheduleHandler.SubmitResult)
	schedule.Get("/:id/results", scheduleHandler.ListResults)

	results := api.Group("/results", authRequired)
	results.Get("/", scheduleHandler.MyResults)
	results.Put("/:id", scheduleHandler.UpdateResult)
	results.Delete("/:id", scheduleHandler.DeleteResult)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
