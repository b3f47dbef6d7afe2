package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"haven_manager/config"
	"haven_manager/database"
	"haven_manager/handler"
	"haven_manager/helper"
	"haven_manager/notify"
	"haven_manager/router"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	db, err := database.Connect()
	if err != nil {
		log.Fatal(err)
	}
	database.SeedData(db)

	images, err := helper.NewCloudinaryStore()
	if err != nil {
		log.Fatal(err)
	}

	mailer := notify.NewMailer()

	bookings := helper.NewBookingManager(db, images, mailer)
	payments := helper.NewPaymentManager(db, images, mailer)
	havens := helper.NewHavenManager(db, images)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() { bookings.AutoComplete(context.Background()) }),
	)
	if err != nil {
		log.Fatal(err)
	}
	scheduler.Start()

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // base64 attachments
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.ConfigDefault("CORS_ORIGINS", "http://localhost:3000"),
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
	}))

	router.SetupRoutes(app, handler.New(bookings, payments, havens))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down")
		_ = scheduler.Shutdown()
		_ = app.Shutdown()
		mailer.Close()
		_ = database.Close(db)
	}()

	log.Fatal(app.Listen(":" + config.ConfigDefault("PORT", "8002")))
}
