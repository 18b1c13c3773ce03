package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/payment"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
	queue_publisher "github.com/iliyamo/hotel-reservation/internal/service"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	roomRepo := repository.NewRoomRepo(db)
	floorRepo := repository.NewFloorRepo(db)
	reservationRepo := repository.NewReservationRepo(db, roomRepo)

	// Drafts live in Redis when a server is reachable so that the payment
	// redirect can land on any instance.  Otherwise fall back to the
	// in-memory store, which is fine for a single node.
	var drafts booking.DraftStore
	if rdb := config.NewRedisClient(); rdb != nil {
		drafts = booking.NewRedisDraftStore(rdb, cfg.DraftTTL)
		log.Println("draft store: redis")
	} else {
		drafts = booking.NewMemoryDraftStore(cfg.DraftTTL)
		log.Println("draft store: in-memory")
	}

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeSuccessURL, cfg.StripeCancelURL)

	// Publish a confirmation event after each successful commit.  The
	// publish is fire-and-forget; a broker outage must not fail the
	// reservation the client already paid for.
	onConfirmed := func(ctx context.Context, res *model.Reservation, d booking.Draft) {
		event := queue.ReservationConfirmedEvent{
			ReservationID:   res.ID,
			ClientID:        res.ClientID,
			RoomID:          res.RoomID,
			RoomNumber:      d.RoomNumber,
			AccompanyNumber: res.AccompanyNumber,
			Days:            d.Days,
			PaidPriceCents:  res.PaidPriceCents,
			PaymentID:       res.PaymentID,
			CheckOutAt:      res.CheckOutAt.UTC().Format(time.RFC3339),
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if err := queue_publisher.PublishReservationConfirmed(ctx, event); err != nil {
			log.Printf("queue: publish reservation confirmed failed: %v", err)
		}
	}

	workflow := booking.NewWorkflow(roomRepo, reservationRepo, drafts, onConfirmed)

	// Sweep expired checkouts in the background for the lifetime of the
	// process.
	sweeper := booking.NewSweeper(reservationRepo, cfg.SweepInterval)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweeper.Run(sweepCtx)

	// Consume confirmation events in-process.  The consumer retries its
	// broker connection on its own.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue: consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	browseHandler := handler.NewBrowseHandler(floorRepo, roomRepo)
	clientHandler := handler.NewClientHandler(workflow, gateway, reservationRepo)
	staffHandler := handler.NewStaffHandler(reservationRepo)
	router.RegisterClient(e, browseHandler, clientHandler, cfg.JWTSecret)
	router.RegisterStaff(e, staffHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
