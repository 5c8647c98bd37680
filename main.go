package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/counselbook/counsel-booking/controllers"
	"github.com/counselbook/counsel-booking/cron"
	"github.com/counselbook/counsel-booking/db"
	appredis "github.com/counselbook/counsel-booking/redis"
	"github.com/counselbook/counsel-booking/routes"
	"github.com/counselbook/counsel-booking/services"
	"github.com/counselbook/counsel-booking/store"
	"github.com/counselbook/counsel-booking/utils"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	db.Seed()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	var cache services.AvailabilityCache
	if os.Getenv("REDIS_ADDR") != "" {
		if err := appredis.InitRedis(); err != nil {
			log.Printf("Redis unavailable, availability caching disabled: %v", err)
		} else {
			cache = appredis.NewAvailabilityCache(appredis.Client)
		}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	clientURL := os.Getenv("CLIENT_URL")
	if clientURL == "" {
		clientURL = "http://localhost:3001"
	}

	st := store.NewGormStore(db.GetDB())
	authSvc := services.NewAuthService(st, secret)
	scheduleSvc := services.NewScheduleService(st, cache)
	invitationSvc := services.NewInvitationService(st, utils.InvitationMailer{}, clientURL)
	bookingSvc := services.NewBookingService(st, cache)
	recordSvc := services.NewRecordService(st)

	routes.SetupAuthRoutes(app, controllers.NewAuthController(authSvc))
	routes.SetupScheduleRoutes(app, controllers.NewScheduleController(scheduleSvc, invitationSvc))
	routes.SetupInvitationRoutes(app, controllers.NewInvitationController(invitationSvc))
	routes.SetupBookingRoutes(app, controllers.NewBookingController(bookingSvc), controllers.NewRecordController(recordSvc))

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
