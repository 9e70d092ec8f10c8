package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/config"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/db"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/logging"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/obs"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/repository"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/service"
	thttp "github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/transport/http"
)

func main() {
	log := logging.New("rooms-service")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	shutdown, err := obs.InitTracer(context.Background(), "rooms-service")
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	} else {
		defer shutdown(context.Background())
	}

	gdb, err := db.Open(cfg.PGRoomsDSN)
	if err != nil {
		log.Fatal("open db", zap.Error(err))
	}

	repo := repository.NewRoomRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	svc := service.NewRoomSvc(repo)

	r := gin.Default()
	thttp.NewRoomHandler(svc).Register(r)

	log.Info("rooms-service listening", zap.String("addr", cfg.RoomsHTTPAddr))
	if err := r.Run(cfg.RoomsHTTPAddr); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}
