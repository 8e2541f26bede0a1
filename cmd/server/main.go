package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/webinar-booking/internal/booking"
	"github.com/iliyamo/webinar-booking/internal/config"
	"github.com/iliyamo/webinar-booking/internal/database"
	"github.com/iliyamo/webinar-booking/internal/handler"
	"github.com/iliyamo/webinar-booking/internal/notifier"
	"github.com/iliyamo/webinar-booking/internal/queue"
	"github.com/iliyamo/webinar-booking/internal/repository"
	"github.com/iliyamo/webinar-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	webinars := repository.NewWebinarRepo(db)
	bookings := repository.NewBookingRepo(db)
	organizerNotifier := notifier.NewAMQP(cfg.AMQPURL)

	svc := booking.NewService(users, webinars, bookings, organizerNotifier)

	// Drain organizer notifications in the background; the consumer
	// runs its own reconnect loop.
	go func() {
		if err := queue.StartNotificationConsumer(cfg.AMQPURL); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	router.Register(e, cfg, rdb,
		handler.NewAuthHandler(cfg, users),
		handler.NewWebinarHandler(webinars, bookings),
		handler.NewBookingHandler(svc),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
