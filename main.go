package main

import (
	"log"

	"github.com/drivenevents/hotel-booking-service/config"
	"github.com/drivenevents/hotel-booking-service/internal/consumer"
	"github.com/drivenevents/hotel-booking-service/internal/handler"
	"github.com/drivenevents/hotel-booking-service/internal/middleware"
	"github.com/drivenevents/hotel-booking-service/internal/repository"
	"github.com/drivenevents/hotel-booking-service/internal/service"
	"github.com/drivenevents/hotel-booking-service/pkg/database"
	"github.com/drivenevents/hotel-booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: mirror enrollment/ticket/room facts from the
	// registration and hotel services
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	syncConsumer := consumer.NewSyncConsumer(db)
	syncConsumer.Start(msgs)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to create RabbitMQ publisher: %v", err)
	}
	defer publisher.Close()

	// Repositories
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Service
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, enrollmentRepo, ticketRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "hotel-booking-service"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)

	log.Printf("Hotel Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
