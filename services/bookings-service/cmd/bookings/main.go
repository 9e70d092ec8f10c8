package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/config"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/db"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/logging"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/mq"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/obs"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/bookings-service/internal/repository"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/bookings-service/internal/service"
	thttp "github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/bookings-service/internal/transport/http"
)

func main() {
	log := logging.New("bookings-service")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	shutdown, err := obs.InitTracer(context.Background(), "bookings-service")
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	} else {
		defer shutdown(context.Background())
	}

	gdb, err := db.Open(cfg.PGBookingsDSN)
	if err != nil {
		log.Fatal("open db", zap.Error(err))
	}

	repo := repository.NewBookingRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.MQExchange)
	if err != nil {
		log.Fatal("connect rabbitmq", zap.Error(err))
	}
	defer pub.Close()

	svc := service.NewBookingSvc(repo, pub, log)

	r := gin.Default()
	thttp.NewBookingHandler(svc, cfg.MFACancelCode).Register(r)

	log.Info("bookings-service listening", zap.String("addr", cfg.BookingsHTTPAddr))
	if err := r.Run(cfg.BookingsHTTPAddr); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}
